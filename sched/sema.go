// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// Semaphore is a counting semaphore whose waiter queue is ordered by
// effective priority rather than FIFO, per spec.md §4.3: "Up wakes the
// highest-priority waiter, not the oldest." Waiters at equal priority are
// served FIFO.
//
// The waiter list reuses listNode the same way sleepQueue does; Lock
// (lock.go) embeds a Semaphore purely for this ordered wait-queue behavior
// and manages its own holder/count semantics around it.
type Semaphore struct {
	k       *Kernel
	count   int
	waiters listNode
}

// NewSemaphore constructs a semaphore with the given initial count.
func NewSemaphore(k *Kernel, initial int) *Semaphore {
	s := &Semaphore{k: k, count: initial}
	s.waiters.makeEmpty()
	return s
}

// Init re-initializes a zero-value Semaphore in place, for embedding inside
// Lock without a separate heap allocation.
func (s *Semaphore) Init(k *Kernel, initial int) {
	s.k = k
	s.count = initial
	s.waiters.makeEmpty()
}

// insertWaiter links t into the queue ordered by descending effective
// priority, FIFO among equals, at the priority t holds right now. This
// ordering is only a starting point, not an invariant: a waiter already
// queued can be donated a higher effective priority later (spec.md §9,
// "the list's ordering is advisory, not invariant"), so popHighestWaiter
// and maxWaiterPriority below both scan rather than trust it.
func (s *Semaphore) insertWaiter(t *Thread) {
	assert(!t.node.isLinked(), "thread %s already linked when joining a semaphore wait queue", t.name)
	p := &s.waiters
	for p.next != &s.waiters && p.next.t.effectivePriority >= t.effectivePriority {
		p = p.next
	}
	t.node.insertAfter(p)
}

// popHighestWaiter removes and returns whichever queued waiter currently
// has the highest effective priority, ties going to whichever of them is
// closer to the head (queued earliest). It scans the whole list rather
// than trusting insertWaiter's order, per spec.md §4.3's "re-sort s.waiters
// by current effective priority" (donation can raise a waiter's priority
// after it has already queued).
func (s *Semaphore) popHighestWaiter() *Thread {
	if s.waiters.isEmpty() {
		return nil
	}
	best := s.waiters.next
	for p := best.next; p != &s.waiters; p = p.next {
		if p.t.effectivePriority > best.t.effectivePriority {
			best = p
		}
	}
	best.remove()
	return best.t
}

// maxWaiterPriority reports the highest effective priority among threads
// currently queued on this semaphore, used by Thread.recomputeEffectivePriority
// to compute a lock holder's donated priority (spec.md §4.4 step 3: "Scan —
// do not trust the waiter list's sort order, since donations while waiting
// can invalidate it.").
func (s *Semaphore) maxWaiterPriority() (int, bool) {
	if s.waiters.isEmpty() {
		return 0, false
	}
	best := s.waiters.next.t.effectivePriority
	for p := s.waiters.next.next; p != &s.waiters; p = p.next {
		if p.t.effectivePriority > best {
			best = p.t.effectivePriority
		}
	}
	return best, true
}

// Down blocks the current thread until the count is positive, then
// decrements it. spec.md §4.3.
func (s *Semaphore) Down() {
	k := s.k
	k.intr.disable()
	if s.count > 0 {
		s.count--
		k.intr.enable()
		return
	}
	self := k.currentThread()
	s.insertWaiter(self)
	k.block()
	k.intr.enable()
}

// TryDown decrements and returns true only if the count was already
// positive; it never blocks.
func (s *Semaphore) TryDown() bool {
	k := s.k
	k.intr.disable()
	defer k.intr.enable()
	if s.count > 0 {
		s.count--
		return true
	}
	return false
}

// Up wakes the highest-priority waiter if any are queued, otherwise
// increments the count. If the woken thread outranks the one currently
// running, the caller yields immediately (spec.md §4.3's "Up never defers a
// due preemption").
func (s *Semaphore) Up() {
	k := s.k
	k.intr.disable()
	if w := s.popHighestWaiter(); w != nil {
		k.unblock(w)
	} else {
		s.count++
	}
	k.intr.enable()
	k.checkPreempt()
}
