// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// Cond is a Mesa-style condition variable (spec.md §4.5), grounded on the
// teacher's nsync.CV: Signal and Broadcast only move waiters back to ready,
// they do not hand off any resource, so every waiter must re-check its
// predicate in a loop after Wait returns, exactly as with nsync's and
// POSIX's condition variables.
type Cond struct {
	k       *Kernel
	waiters listNode
}

// NewCond constructs a condition variable associated with k. A Cond is not
// tied to any one Lock; callers pass the lock they're using with it to
// Wait, matching spec.md §4.5.
func NewCond(k *Kernel) *Cond {
	c := &Cond{k: k}
	c.waiters.makeEmpty()
	return c
}

// Wait atomically releases l and blocks the current thread, then
// re-acquires l before returning. "Atomically" here means the release and
// the enqueue onto c's waiter list happen in the same interrupts-disabled
// span, so a Signal racing with this call cannot be lost between the two.
func (c *Cond) Wait(l *Lock) {
	k := c.k
	k.intr.disable()
	self := k.currentThread()
	c.insertWaiter(self)
	l.releaseForWait(self)
	k.block()
	k.intr.enable()
	l.Acquire()
}

// Signal wakes the highest-priority waiter, if any (spec.md §4.5: "signal
// must wake the highest-priority waiter, not merely some waiter").
func (c *Cond) Signal() {
	k := c.k
	k.intr.disable()
	w := c.popHighestWaiter()
	if w != nil {
		k.unblock(w)
	}
	k.intr.enable()
	if w != nil {
		k.checkPreempt()
	}
}

// Broadcast wakes every current waiter.
func (c *Cond) Broadcast() {
	k := c.k
	k.intr.disable()
	var woken []*Thread
	for {
		w := c.popHighestWaiter()
		if w == nil {
			break
		}
		k.unblock(w)
		woken = append(woken, w)
	}
	k.intr.enable()
	if len(woken) > 0 {
		k.checkPreempt()
	}
}

// insertWaiter links t into the queue at the priority it holds right now.
// Like Semaphore.insertWaiter, this is only a starting point: a waiter
// parked here can still be holding (or be donated through) a lock, so its
// effective priority can rise after it has already queued. popHighestWaiter
// scans rather than trusting this order, per spec.md §4.5: the waiter list
// is "re-sorted at signal time by the priority of its sole waiter."
func (c *Cond) insertWaiter(t *Thread) {
	assert(!t.node.isLinked(), "thread %s already linked when waiting on a condition variable", t.name)
	p := &c.waiters
	for p.next != &c.waiters && p.next.t.effectivePriority >= t.effectivePriority {
		p = p.next
	}
	t.node.insertAfter(p)
}

// popHighestWaiter removes and returns whichever queued waiter currently
// has the highest effective priority, ties going to whichever of them is
// closer to the head (queued earliest).
func (c *Cond) popHighestWaiter() *Thread {
	if c.waiters.isEmpty() {
		return nil
	}
	best := c.waiters.next
	for p := best.next; p != &c.waiters; p = p.next {
		if p.t.effectivePriority > best.t.effectivePriority {
			best = p
		}
	}
	best.remove()
	return best.t
}
