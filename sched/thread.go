// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import "fmt"

// State is a thread's scheduling state. See spec.md §3.
type State int

const (
	// Ready means the thread is runnable and sitting on the ready list.
	Ready State = iota
	// Running means the thread currently holds the CPU. Exactly one
	// thread is Running at a time.
	Running
	// Blocked means the thread is waiting on a semaphore, a lock, a
	// condition variable, or the sleep queue.
	Blocked
	// Dying means the thread has called ThreadExit and is waiting for
	// its parent to reap it.
	Dying
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Blocked:
		return "BLOCKED"
	case Dying:
		return "DYING"
	default:
		return "UNKNOWN"
	}
}

// ThreadID is a stable handle into the kernel's thread arena: an index plus
// a generation counter. A Lock names its holder by ThreadID, never by
// *Thread, so that the thread↔lock↔thread ownership graph spec.md §9
// describes has no holder pointers and stale handles (a tid from a slot
// that has since been reaped and reused) are detectable instead of silently
// aliasing a different thread. Wait lists (ready buckets, semaphore and
// condition variable waiters, the sleep queue) still link Thread nodes
// directly through their embedded listNode.
type ThreadID struct {
	index      uint32
	generation uint32
}

// invalidThreadID is the zero value and never names a live thread.
var invalidThreadID = ThreadID{}

// Valid reports whether id could possibly name a thread (it may still be
// stale; only the arena can confirm that against the slot's generation).
func (id ThreadID) Valid() bool { return id != invalidThreadID }

func (id ThreadID) String() string { return fmt.Sprintf("tid#%d.%d", id.index, id.generation) }

// maxNameLen is spec.md §3's "printable name ≤15 chars" bound, matching the
// original kernel's THREAD_NAME_MAX.
const maxNameLen = 15

// EntryFunc is a thread's body. It receives the owning Kernel rather than
// its own Thread because, by the run-token invariant (runtoken.go), the
// goroutine executing an EntryFunc is always the one Kernel considers
// current: k.currentThread() inside entry is self, the way thread_current()
// would read a CPU-local variable on real hardware.
type EntryFunc func(k *Kernel, arg interface{})

// Thread is a thread control block: spec.md §3's data model. A Thread's
// goroutine runs its entry function but only makes progress while it holds
// token (see runtoken.go); every other field here is protected by the
// owning Kernel's intrLock ("interrupts disabled").
type Thread struct {
	id   ThreadID
	tid  uint64 // monotonic serial, assigned once at creation; the identity exposed to callers
	name string

	state State

	basePriority      int
	effectivePriority int

	entry EntryFunc
	arg   interface{}

	token       runToken
	quantumLeft int

	parent   ThreadID
	children []ThreadID

	// node is this thread's wait linkage: live in at most one of the
	// ready list's buckets, a semaphore's waiter list, a condition
	// variable's waiter list, or the sleep queue.
	node listNode

	blockedOnLock *Lock
	locksHeld     []*Lock

	wakeAt uint64 // valid only while on the sleep queue

	exitDone *Semaphore
	exitCode int

	k *Kernel
}

// Tid returns the thread's identity, as spec.md §4.6's thread_current would
// expose it.
func (t *Thread) Tid() uint64 { return t.tid }

// Name returns the thread's printable name.
func (t *Thread) Name() string { return t.name }

// State returns the thread's current scheduling state.
func (t *Thread) State() State { return t.state }

// BasePriority returns the priority the thread asked for.
func (t *Thread) BasePriority() int { return t.basePriority }

// EffectivePriority returns max(base_priority, all donations currently
// received), per spec.md §3's invariant.
func (t *Thread) EffectivePriority() int { return t.effectivePriority }

func truncateName(name string) string {
	if len(name) > maxNameLen {
		return name[:maxNameLen]
	}
	return name
}

// recomputeEffectivePriority implements spec.md §4.4 step 3: start from
// base_priority, then scan every lock still held and take the maximum
// effective priority among its current waiters. It is a scan, not a cached
// read, because a waiter's own priority may have changed since it joined
// the queue (see spec.md §9, "donation is not a one-shot write").
func (t *Thread) recomputeEffectivePriority() {
	best := t.basePriority
	for _, l := range t.locksHeld {
		if p, ok := l.sema.maxWaiterPriority(); ok && p > best {
			best = p
		}
	}
	t.effectivePriority = best
}
