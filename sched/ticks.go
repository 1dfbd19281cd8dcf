// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import "time"

// TicksNow reads the monotonic tick counter. spec.md §4.1: "reads the
// monotonic counter while interrupts are disabled, returns the snapshot."
func (k *Kernel) TicksNow() uint64 {
	k.intr.disable()
	now := k.ticks
	k.intr.enable()
	return now
}

// TimerElapsed returns ticksNow() - since.
func (k *Kernel) TimerElapsed(since uint64) uint64 {
	return k.TicksNow() - since
}

// TimerSleep blocks the current thread for n ticks. n <= 0 returns
// immediately (spec.md §4.1, §4.7).
func (k *Kernel) TimerSleep(n int64) {
	if n <= 0 {
		return
	}
	k.intr.disable()
	t := k.currentThread()
	t.wakeAt = k.ticks + uint64(n)
	k.sleepQ.insert(t)
	k.block()
	k.intr.enable()
}

func ticksForDuration(hz int, d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d * time.Duration(hz) / time.Second)
}

// TimerMSleep, TimerUSleep, and TimerNSleep convert milliseconds,
// microseconds, and nanoseconds to ticks, rounding down (spec.md §4.1).
// When the rounded count is zero they busy-wait for the whole duration
// instead of sleeping zero ticks, timing the wait against the host's wall
// clock; there is no boot-time calibration loop.
func (k *Kernel) TimerMSleep(ms int64) { k.timerSleepDuration(time.Duration(ms) * time.Millisecond) }
func (k *Kernel) TimerUSleep(us int64) { k.timerSleepDuration(time.Duration(us) * time.Microsecond) }
func (k *Kernel) TimerNSleep(ns int64) { k.timerSleepDuration(time.Duration(ns) * time.Nanosecond) }

func (k *Kernel) timerSleepDuration(d time.Duration) {
	ticks := ticksForDuration(k.cfg.TickHz, d)
	if ticks >= 1 {
		k.TimerSleep(ticks)
		return
	}
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		spinDelay(0)
	}
}

// startTicking launches the goroutine that plays the role of the 8254 PIT
// interrupt handler: increment ticks, run the scheduler's tick hook, then
// drain the sleep queue. It runs as its own goroutine, never as one of the
// kernel's Threads, which mirrors the real kernel's tick handler running on
// the interrupt stack rather than any thread's stack.
func (k *Kernel) startTicking() {
	interval := time.Second / time.Duration(k.cfg.TickHz)
	k.quantumTimer = time.NewTicker(interval)
	k.stopTicking = make(chan struct{})
	go func() {
		for {
			select {
			case <-k.stopTicking:
				k.quantumTimer.Stop()
				return
			case <-k.quantumTimer.C:
				k.tickHandler()
			}
		}
	}()
}

// tickHandler runs in "interrupt context": intr is already logically
// disabled for its duration, and it must never call yield() or block()
// directly (see scheduler.go's onTick), only request a deferred yield.
func (k *Kernel) tickHandler() {
	k.intr.disable()
	k.ticks++
	if k.metrics != nil {
		k.metrics.IncTicks()
	}
	k.onTick()
	woken := k.sleepQ.due(k.ticks)
	for _, t := range woken {
		k.unblock(t)
	}
	k.intr.enable()
}
