// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// Lock is a non-recursive mutex with multi-level priority donation
// (spec.md §4.4). Unlike the teacher's nsync.Mu, which is deliberately
// donation-free, this Lock tracks its holder by ThreadID and walks the
// holder's own blockedOnLock chain so a thread waiting behind a chain of
// contested locks lifts every holder in the chain, not just the first one.
//
// sema is reused purely for its priority-ordered wait queue (insertWaiter,
// popHighestWaiter, maxWaiterPriority); Lock never calls sema.Down/Up and
// ignores its count.
type Lock struct {
	k      *Kernel
	holder ThreadID
	sema   Semaphore
}

// NewLock constructs an unheld lock.
func NewLock(k *Kernel) *Lock {
	l := &Lock{k: k}
	l.sema.Init(k, 0)
	return l
}

// Acquire blocks the current thread until it holds l. If l is already held,
// the calling thread donates its effective priority up the chain of locks
// currently blocking it (bounded by Config.DonationDepthMax) before
// queuing and blocking.
func (l *Lock) Acquire() {
	k := l.k
	k.intr.disable()
	self := k.currentThread()

	if !l.holder.Valid() {
		l.holder = self.id
		self.locksHeld = append(self.locksHeld, l)
		k.intr.enable()
		return
	}

	assert(l.holder != self.id, "thread %s re-acquiring lock it already holds", self.name)
	l.donate(self)
	self.blockedOnLock = l
	l.sema.insertWaiter(self)
	k.block()
	self.blockedOnLock = nil
	k.intr.enable()
}

// TryAcquire takes l only if it is currently free, without blocking and
// without donating (spec.md §4.4: "try_acquire never donates; a thread
// that isn't going to wait has nothing to offer").
func (l *Lock) TryAcquire() bool {
	k := l.k
	k.intr.disable()
	defer k.intr.enable()
	if l.holder.Valid() {
		return false
	}
	self := k.currentThread()
	l.holder = self.id
	self.locksHeld = append(self.locksHeld, l)
	return true
}

// donate walks the chain of locks blocking the current holder, raising
// each holder's effective priority to self's if self outranks it, stopping
// at Config.DonationDepthMax hops or the first holder not itself blocked on
// another lock. Requires intr held.
func (l *Lock) donate(self *Thread) {
	k := l.k
	cur := l
	depth := 0
	for depth < k.cfg.DonationDepthMax {
		holder := k.thread(cur.holder)
		if holder == nil || self.effectivePriority <= holder.effectivePriority {
			break
		}
		wasReady := holder.state == Ready && holder.node.isLinked()
		if wasReady {
			k.ready.remove(holder)
		}
		holder.effectivePriority = self.effectivePriority
		if wasReady {
			k.ready.push(holder)
		}
		depth++
		if holder.blockedOnLock == nil {
			break
		}
		cur = holder.blockedOnLock
	}
	if k.metrics != nil {
		k.metrics.ObserveDonationChainDepth(depth)
	}
}

// Release gives up l. If another thread is waiting, it is handed the lock
// directly (no free-for-all re-acquisition race) and moved to the ready
// list; the outgoing holder's effective priority is recomputed from its
// remaining held locks, since it may have been the target of donation
// tied to this one.
func (l *Lock) Release() {
	k := l.k
	k.intr.disable()
	self := k.currentThread()
	l.releaseForWait(self)
	k.intr.enable()
	k.checkPreempt()
}

// releaseForWait is Release's core, minus the intr disable/enable pair and
// the post-release preemption check, for use by Cond.Wait which needs the
// release to happen inside a span of intr already held alongside the
// waiter-list insertion (see cond.go).
func (l *Lock) releaseForWait(self *Thread) {
	k := l.k
	assert(l.holder == self.id, "thread %s releasing lock it does not hold", self.name)

	self.locksHeld = removeLock(self.locksHeld, l)
	self.recomputeEffectivePriority()

	if w := l.sema.popHighestWaiter(); w != nil {
		l.holder = w.id
		w.locksHeld = append(w.locksHeld, l)
		k.unblock(w)
	} else {
		l.holder = invalidThreadID
	}
}

// HeldByCurrent reports whether the calling thread currently holds l.
func (l *Lock) HeldByCurrent() bool {
	k := l.k
	k.intr.disable()
	defer k.intr.enable()
	return l.holder == k.currentThread().id
}

func removeLock(held []*Lock, l *Lock) []*Lock {
	for i, h := range held {
		if h == l {
			return append(held[:i], held[i+1:]...)
		}
	}
	return held
}
