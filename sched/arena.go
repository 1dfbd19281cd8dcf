// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// allocThread claims a free arena slot for a new thread. Requires intr
// held. Returns nil, zero-value id if the arena is full.
func (k *Kernel) allocThread(name string, priority int) (ThreadID, *Thread) {
	if len(k.freeSlots) == 0 {
		return invalidThreadID, nil
	}
	n := len(k.freeSlots)
	index := k.freeSlots[n-1]
	k.freeSlots = k.freeSlots[:n-1]

	slot := &k.threads[index]
	id := ThreadID{index: index, generation: slot.id.generation}
	k.nextTID++

	*slot = Thread{
		id:                id,
		tid:               k.nextTID,
		name:              truncateName(name),
		state:             Ready,
		basePriority:      priority,
		effectivePriority: priority,
		k:                 k,
	}
	slot.node.t = slot
	slot.exitDone = NewSemaphore(k, 0)
	k.liveTIDs[slot.tid] = struct{}{}
	return id, slot
}

// freeThread returns a reaped thread's slot to the free list and bumps its
// generation, so any ThreadID still referencing it becomes stale. Requires
// intr held.
func (k *Kernel) freeThread(id ThreadID) {
	slot := &k.threads[id.index]
	assert(slot.id == id, "freeThread: stale id %v (slot generation %d)", id, slot.id.generation)
	delete(k.liveTIDs, slot.tid)
	slot.id.generation++
	if slot.id.generation == 0 {
		slot.id.generation = 1 // never let a slot settle back on the invalid generation 0
	}
	k.freeSlots = append(k.freeSlots, id.index)
}

// thread resolves a ThreadID to its Thread, or nil if the handle is stale
// or out of range. Requires intr held.
func (k *Kernel) thread(id ThreadID) *Thread {
	if !id.Valid() || int(id.index) >= len(k.threads) {
		return nil
	}
	slot := &k.threads[id.index]
	if slot.id.generation != id.generation {
		return nil
	}
	return slot
}

// currentThread returns the Thread for k.current. Requires intr held.
func (k *Kernel) currentThread() *Thread {
	t := k.thread(k.current)
	assert(t != nil, "kernel has no valid current thread")
	return t
}
