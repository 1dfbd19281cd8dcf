// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// sleepQueue holds threads blocked until a wake_at tick deadline, kept
// sorted ascending by wake_at (spec.md §3) so the tick handler only has to
// look at the head to know whether anything is due. Insertion is a linear
// scan; this is fine per spec.md §4.4's own reasoning about held-lock
// waiter lists ("held-count is tiny in practice") applied here to
// concurrently-sleeping threads in a single-CPU teaching kernel.
type sleepQueue struct {
	head listNode
}

func (q *sleepQueue) init() {
	q.head.makeEmpty()
}

// insert places t into the queue in wake_at order.
func (q *sleepQueue) insert(t *Thread) {
	assert(!t.node.isLinked(), "thread %s already linked when entering sleep queue", t.name)
	p := &q.head
	for p.next != &q.head && p.next.t.wakeAt <= t.wakeAt {
		p = p.next
	}
	t.node.insertAfter(p)
}

// remove detaches t from the sleep queue.
func (q *sleepQueue) remove(t *Thread) {
	t.node.remove()
}

// due removes and returns every thread whose wake_at has passed, in
// wake_at order, leaving the rest queued.
func (q *sleepQueue) due(now uint64) []*Thread {
	var woken []*Thread
	for p := q.head.next; p != &q.head; {
		next := p.next
		if p.t.wakeAt > now {
			break
		}
		t := p.t
		p.remove()
		woken = append(woken, t)
		p = next
	}
	return woken
}
