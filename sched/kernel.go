// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched implements the concurrency core of a small teaching kernel:
// a preemptive priority scheduler, a tick-driven sleep/wake facility,
// counting semaphores, non-recursive locks with multi-level priority
// donation, and Mesa-style condition variables layered on top.
//
// A Kernel is the single global context spec.md §9's design notes call
// for: "a single Kernel context value constructed once at boot ... all
// mutation done inside with_interrupts_disabled scoped guards." Every
// exported method on Kernel and on the types it hands out (Thread, Lock,
// Semaphore, Cond) is part of the public API spec.md §4.6 names.
package sched

import (
	"time"

	"github.com/kos-kernel/kos/set"
	"github.com/kos-kernel/kos/uniqueid"
	"github.com/kos-kernel/kos/vlog"
)

// MetricsSink receives scheduler observability events. internal/metrics
// implements this against Prometheus collectors; tests and simple demos
// can leave it nil (Kernel treats a nil sink as a no-op).
type MetricsSink interface {
	SetReadyThreads(n int)
	IncTicks()
	IncContextSwitches()
	ObserveDonationChainDepth(depth int)
}

// Kernel owns every piece of global, scheduler-touching state: the thread
// arena, the ready list, the sleep queue, and the tick source. spec.md §5:
// "All scheduler-touching state ... is protected by disabling interrupts
// around each critical section." That's intr here.
type Kernel struct {
	cfg Config

	intr intrLock

	threads   []Thread
	freeSlots []uint32

	ready  readyList
	sleepQ sleepQueue

	ticks        uint64
	quantumTimer *time.Ticker
	stopTicking  chan struct{}

	current      ThreadID
	idle         ThreadID
	needResched  bool
	switchCount  uint64

	nextTID  uint64
	liveTIDs map[uint64]struct{}

	bootSession uniqueid.ID
	metrics     MetricsSink
}

// NewKernel allocates a Kernel with the given configuration but does not
// start ticking or schedule any thread; call Boot to do that. Separating
// the two lets tests construct a Kernel, register a metrics sink, and only
// then boot.
func NewKernel(cfg Config) *Kernel {
	cfg.validate()
	k := &Kernel{
		cfg:      cfg,
		threads:  make([]Thread, cfg.ThreadArenaSize),
		liveTIDs: make(map[uint64]struct{}),
	}
	k.ready.init()
	k.sleepQ.init()
	if id, err := uniqueid.Random(); err == nil {
		k.bootSession = id
	}
	for i := range k.threads {
		k.threads[i].id = ThreadID{index: uint32(i), generation: 1}
		k.freeSlots = append(k.freeSlots, uint32(i))
	}
	return k
}

// SetMetricsSink installs the collector that ticks, context switches,
// ready-queue depth, and donation-chain depth are reported to. Pass nil to
// disable reporting.
func (k *Kernel) SetMetricsSink(m MetricsSink) { k.metrics = m }

// Boot installs the calling goroutine as the kernel's first thread (spec.md
// never has an explicit "main" thread distinct from the scheduler, but a
// hosted program needs one goroutine to have called in before any other
// thread can be created) and starts an idle thread and the tick source.
// It returns the main thread's id.
func (k *Kernel) Boot(mainName string, mainPriority int) ThreadID {
	k.intr.disable()
	mainID, main := k.allocThread(mainName, mainPriority)
	main.state = Running
	main.token = newRunToken()
	k.current = mainID
	k.intr.enable()

	idleID, err := k.ThreadCreate("idle", PriMin, idleLoop, nil)
	assert(err == nil, "failed to create idle thread: %v", err)
	k.idle = idleID

	vlog.VI(1).Infof("kernel booted: session=%v main=%s tickhz=%d", k.bootSession, mainName, k.cfg.TickHz)
	k.startTicking()
	return mainID
}

func idleLoop(k *Kernel, _ interface{}) {
	for {
		// There is nothing to do; let Checkpoint yield the CPU whenever a
		// reschedule is pending, and don't spin the host CPU while we're
		// "halted" waiting for the next interrupt.
		k.Checkpoint()
		time.Sleep(time.Millisecond)
	}
}

// Shutdown stops the tick source. It does not attempt to reap any thread;
// like spec.md's kernel, Kernel has no clean-shutdown story beyond tests
// tearing down their own goroutines.
func (k *Kernel) Shutdown() {
	if k.quantumTimer != nil {
		k.stopTicking <- struct{}{}
	}
}

// liveThreadTids returns an unordered snapshot of currently-live thread ids,
// using the retrieved set package's Uint64 helpers purely as a
// slice<->set marshaling convenience for metrics/debug reporting.
func (k *Kernel) liveThreadTids() []uint64 {
	k.intr.disable()
	defer k.intr.enable()
	return set.Uint64.ToSlice(k.liveTIDs)
}
