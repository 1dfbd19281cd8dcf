// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// readyList is the scheduler's ready queue: spec.md §3, "implementable as
// ... a 64-bucket array (one per priority)". Each bucket is a circular
// intrusive list head; enqueue appends to the tail of a thread's priority
// bucket, so threads of equal priority are served FIFO, and the highest
// non-empty bucket is always picked first. All operations require the
// owning Kernel's intrLock to be held.
type readyList struct {
	buckets [numPriorities]listNode
	count   int
}

func (r *readyList) init() {
	for i := range r.buckets {
		r.buckets[i].makeEmpty()
	}
}

// push enqueues t at the tail of its effective-priority bucket.
func (r *readyList) push(t *Thread) {
	assert(!t.node.isLinked(), "thread %s already linked when entering ready list", t.name)
	head := &r.buckets[priorityIndex(t.effectivePriority)]
	t.node.insertAfter(head.prev)
	r.count++
}

// remove detaches t from whatever bucket it is currently in. Used when a
// donation changes a READY thread's effective priority and it must move to
// a different bucket (spec.md §4.4 step 2).
func (r *readyList) remove(t *Thread) {
	t.node.remove()
	r.count--
}

// popHighest removes and returns the head of the highest-priority non-empty
// bucket, or nil if the ready list is empty.
func (r *readyList) popHighest() *Thread {
	for p := maxPriority; p >= minPriority; p-- {
		head := &r.buckets[priorityIndex(p)]
		if !head.isEmpty() {
			t := head.next.t
			r.remove(t)
			return t
		}
	}
	return nil
}

// headPriority returns the effective priority of the highest-priority ready
// thread, and false if the ready list is empty. Used by shouldPreempt,
// which must not mutate the list.
func (r *readyList) headPriority() (int, bool) {
	for p := maxPriority; p >= minPriority; p-- {
		head := &r.buckets[priorityIndex(p)]
		if !head.isEmpty() {
			return p, true
		}
	}
	return 0, false
}
