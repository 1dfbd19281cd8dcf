// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// runToken is a binary semaphore, one per Thread, used the same way the
// retrieved nsync package uses binarySemaphore to park and wake a single
// waiter. Here it stands in for `switch_threads`: a thread's goroutine
// blocks on P() whenever schedule() decides some other thread should run,
// and schedule() calls V() on exactly the one thread it is switching into.
// At most one runToken in the whole kernel is "available" at a time.
type runToken struct {
	ch chan struct{}
}

func newRunToken() runToken {
	return runToken{ch: make(chan struct{}, 1)}
}

// p waits until the token is granted, then consumes it.
func (r runToken) p() {
	<-r.ch
}

// v grants the token. Never blocks.
func (r runToken) v() {
	select {
	case r.ch <- struct{}{}:
	default: // already granted; nothing to do.
	}
}
