// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// listNode is an intrusive doubly-linked list node, embedded directly in a
// Thread so that enqueuing a thread onto the ready list, a semaphore's
// waiter list, a condition variable's waiter list, or the sleep queue never
// allocates. A Thread's listNode is live in at most one list at a time: the
// ready list, exactly one semaphore's or condition variable's waiters, or
// the sleep queue.
type listNode struct {
	next *listNode
	prev *listNode
	t    *Thread // the Thread this node is embedded in, or nil for a list head
}

// makeEmpty makes list head l an empty circular list.
func (l *listNode) makeEmpty() {
	l.next = l
	l.prev = l
}

// isEmpty reports whether list head l has no elements.
func (l *listNode) isEmpty() bool {
	return l.next == l
}

// insertAfter inserts node e into the list immediately after p.
// Requires e not currently be part of any list.
func (e *listNode) insertAfter(p *listNode) {
	e.next = p.next
	e.prev = p
	e.next.prev = e
	e.prev.next = e
}

// remove detaches e from whatever list it is currently part of.
func (e *listNode) remove() {
	e.next.prev = e.prev
	e.prev.next = e.next
	e.next = nil
	e.prev = nil
}

// isInList reports whether e can be reached by walking from head l.
func (e *listNode) isInList(l *listNode) bool {
	for p := l.next; p != l; p = p.next {
		if p == e {
			return true
		}
	}
	return false
}

// isLinked reports whether e is currently part of some list (as opposed to
// detached, its zero value, or just removed).
func (e *listNode) isLinked() bool {
	return e.next != nil && e.prev != nil
}
