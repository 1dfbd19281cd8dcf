// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// schedule performs the actual context switch: pick the highest-priority
// ready thread, hand it the CPU by granting its run token, and park the
// previously-running thread on its own token until it is granted the CPU
// again. Requires intr held; returns with intr still held, exactly as
// spec.md §4.2 describes schedule() (the caller is responsible for the
// disable/enable pair around the whole operation).
//
// "Handing the CPU" here means: the goroutine that calls schedule() is the
// one currently holding the single outstanding run token. It grants the
// next thread's token (waking that goroutine, which is blocked receiving on
// its own token) and then blocks receiving on its own token. Exactly one
// token is ever "live" at a time, which is what makes this a faithful
// single-CPU simulation rather than real parallelism.
//
// prev always parks on its own token here, even when prev.state is Dying:
// a Dying thread's token will never be granted again, so this blocks its
// goroutine forever, the same way a zombie process never runs again once
// it has exited. That parking is what hands exclusive control of the
// resumed goroutine's post-switch work (including the single intr.enable()
// that balances this call's caller's intr.disable()) to next alone. Letting
// a Dying prev fall through schedule() without parking would leave its
// goroutine racing next's goroutine and would double-release intr when
// both sides went on to call intr.enable().
func (k *Kernel) schedule() {
	next := k.ready.popHighest()
	if next == nil {
		next = k.thread(k.idle)
		assert(next != nil, "schedule: ready list empty and idle thread missing")
	}
	if k.metrics != nil {
		k.metrics.SetReadyThreads(k.ready.count)
	}

	prev := k.currentThread()
	if next == prev {
		// Only one runnable thread exists; it keeps the CPU without a
		// token handoff.
		next.state = Running
		return
	}

	next.state = Running
	next.quantumLeft = k.cfg.TimeSlice
	k.current = next.id
	k.switchCount++
	if k.metrics != nil {
		k.metrics.IncContextSwitches()
	}

	next.token.v()
	prev.token.p()
}

// block removes the current thread from the CPU without putting it back on
// the ready list. Requires intr held and the current thread already RUNNING
// (or, from ThreadExit, already marked Dying) and already linked into
// whatever wait structure (a semaphore's waiters, a lock's waiters, the
// sleep queue) is responsible for waking it later. A thread already Dying
// is left Dying rather than overwritten to Blocked: nothing will ever call
// unblock on it again (it has no wait structure to be woken from), and its
// goroutine parks for good on its own token inside schedule(), the same as
// any other thread switched out here, never to be granted that token again.
func (k *Kernel) block() {
	t := k.currentThread()
	assert(t.state == Running || t.state == Dying, "block: thread %s not RUNNING (state=%v)", t.name, t.state)
	if t.state != Dying {
		t.state = Blocked
	}
	k.schedule()
}

// unblock moves a blocked thread back onto the ready list. Requires intr
// held. Per spec.md §4.2, unblock never itself triggers a switch: the
// caller (a tick handler, an Up, a Release, a Signal) decides separately
// whether the newly-ready thread warrants preempting the one currently
// running.
func (k *Kernel) unblock(t *Thread) {
	assert(t.state == Blocked, "unblock: thread %s not BLOCKED (state=%v)", t.name, t.state)
	t.state = Ready
	k.ready.push(t)
	if k.metrics != nil {
		k.metrics.SetReadyThreads(k.ready.count)
	}
}

// Yield gives up the remainder of the current thread's quantum voluntarily.
// It is the only way a thread re-enters the ready list while still able to
// run; everything else leaves via block.
func (k *Kernel) Yield() {
	k.intr.disable()
	t := k.currentThread()
	t.state = Ready
	k.ready.push(t)
	k.schedule()
	k.intr.enable()
}

// shouldPreempt reports whether the highest-priority ready thread strictly
// outranks the thread currently running. Requires intr held.
func (k *Kernel) shouldPreempt() bool {
	hp, ok := k.ready.headPriority()
	if !ok {
		return false
	}
	return hp > k.currentThread().effectivePriority
}

// onTick charges one tick against the running thread's quantum. It never
// switches threads itself (it runs on the tick handler's goroutine, not any
// thread's), only flags needResched; the actual switch happens the next
// time the running thread calls Checkpoint. Requires intr held.
func (k *Kernel) onTick() {
	cur := k.currentThread()
	cur.quantumLeft--
	if cur.quantumLeft <= 0 {
		k.needResched = true
	}
	if k.shouldPreempt() {
		k.needResched = true
	}
}

// Checkpoint is the voluntary preemption point described in SPEC_FULL.md §0:
// true asynchronous, mid-instruction preemption isn't available to a
// hosted Go process, so threads that run for a while without blocking or
// calling Checkpoint will not be preempted on quantum exhaustion until they
// next do. Every blocking kernel call already has an implicit checkpoint
// (it either blocks outright or returns only once scheduled), so a
// Checkpoint is only needed inside CPU-bound stretches such as the idle
// loop or a demo workload.
func (k *Kernel) Checkpoint() {
	k.intr.disable()
	resched := k.needResched
	k.needResched = false
	k.intr.enable()
	if resched {
		k.Yield()
	}
}

// checkPreempt is the thread-context counterpart of the tick handler's
// deferred resched check: called right after an Up, a lock Release, or a
// Signal/Broadcast might have made a higher-priority thread ready, it
// yields immediately instead of waiting for the next tick or Checkpoint.
func (k *Kernel) checkPreempt() {
	k.intr.disable()
	should := k.shouldPreempt()
	k.intr.enable()
	if should {
		k.Yield()
	}
}
