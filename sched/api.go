// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// ThreadCreate allocates and starts a new thread running entry(k, arg) at
// the given base priority, parented to the calling thread. The new thread
// is linked onto the ready list immediately; it does not actually run
// until the scheduler grants it the CPU. spec.md §4.6.
func (k *Kernel) ThreadCreate(name string, priority int, entry EntryFunc, arg interface{}) (ThreadID, error) {
	k.intr.disable()
	id, t := k.allocThread(name, priority)
	if t == nil {
		k.intr.enable()
		return invalidThreadID, ErrNoThreadSlots
	}
	t.token = newRunToken()
	t.entry = entry
	t.arg = arg
	t.quantumLeft = k.cfg.TimeSlice

	if parent := k.thread(k.current); parent != nil {
		t.parent = parent.id
		parent.children = append(parent.children, id)
	}
	k.ready.push(t)
	if k.metrics != nil {
		k.metrics.SetReadyThreads(k.ready.count)
	}
	k.intr.enable()

	go func() {
		t.token.p()
		// schedule() grants a token while still holding intr (see
		// scheduler.go), relying on whichever goroutine resumes past the
		// grant to release it. A thread resuming inside schedule() does
		// that via its own caller's intr.enable() (Yield, block's
		// callers, ...); a brand-new thread has no such caller on its call
		// stack yet, so it must release intr itself here before running
		// user code, or the lock stays held forever after the first
		// fresh-thread switch.
		k.intr.enable()
		entry(k, arg)
		k.ThreadExit(0)
	}()

	k.checkPreempt()
	return id, nil
}

// ThreadExit marks the calling thread Dying, records its exit status for a
// joiner, and never returns: k.block() parks this goroutine on its own run
// token for good (schedule() always parks the outgoing thread, Dying or
// not — see scheduler.go), and nothing will ever grant that token again.
// A thread that exits without ever being joined leaves its arena slot
// permanently unreclaimed and its goroutine permanently parked, the same
// as an unwaited zombie process; spec.md has no garbage-collection story
// for this and neither does this implementation.
//
// The Dying transition and the exitDone wakeup happen under the same
// uninterrupted intr span as the final block. Signaling exitDone through
// the public Semaphore.Up would run checkPreempt and risk yielding the
// exiting thread back onto the ready list before it is marked Dying and
// has called block, letting a joiner reclaim its arena slot while its
// goroutine still had code left to run.
func (k *Kernel) ThreadExit(code int) {
	k.intr.disable()
	self := k.currentThread()
	self.exitCode = code
	self.state = Dying

	if w := self.exitDone.popHighestWaiter(); w != nil {
		k.unblock(w)
	} else {
		self.exitDone.count++
	}

	k.block()
	assert(false, "thread %s: block() returned to a Dying thread", self.name)
}

// ThreadJoin blocks until the thread named by id has called ThreadExit,
// reclaims its arena slot, and returns the code it exited with.
func (k *Kernel) ThreadJoin(id ThreadID) (int, error) {
	k.intr.disable()
	t := k.thread(id)
	k.intr.enable()
	if t == nil {
		return 0, ErrNoSuchThread
	}

	t.exitDone.Down()

	k.intr.disable()
	code := t.exitCode
	k.freeThread(id)
	k.intr.enable()
	return code, nil
}

// ThreadCurrent returns the calling thread's id. Valid from any goroutine
// that is, by the run-token invariant, the one Kernel currently considers
// running.
func (k *Kernel) ThreadCurrent() ThreadID {
	k.intr.disable()
	defer k.intr.enable()
	return k.currentThread().id
}

// ThreadSetPriority changes a thread's base priority. If the thread is
// currently receiving a donation, its effective priority only drops once
// the donation is released (spec.md §4.4); if it's sitting on the ready
// list at its old effective priority, it is moved to the new bucket.
func (k *Kernel) ThreadSetPriority(id ThreadID, priority int) error {
	priority = clampPriority(priority)
	k.intr.disable()
	defer k.intr.enable()
	t := k.thread(id)
	if t == nil {
		return ErrNoSuchThread
	}
	t.basePriority = priority
	wasReady := t.state == Ready && t.node.isLinked()
	if wasReady {
		k.ready.remove(t)
	}
	t.recomputeEffectivePriority()
	if wasReady {
		k.ready.push(t)
	}
	return nil
}

// ThreadGetPriority returns a thread's (base, effective) priority pair.
func (k *Kernel) ThreadGetPriority(id ThreadID) (base, effective int, err error) {
	k.intr.disable()
	defer k.intr.enable()
	t := k.thread(id)
	if t == nil {
		return 0, 0, ErrNoSuchThread
	}
	return t.basePriority, t.effectivePriority, nil
}

func clampPriority(p int) int {
	if p < PriMin {
		return PriMin
	}
	if p > PriMax {
		return PriMax
	}
	return p
}
