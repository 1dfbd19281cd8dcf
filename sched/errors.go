// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"errors"

	"github.com/kos-kernel/kos/vlog"
)

// ErrNoThreadSlots is returned by (*Kernel).ThreadCreate when the thread
// arena is full. This is spec.md's TID_ERROR: a resource allocation
// failure, not a precondition violation, so it is a returned error rather
// than a panic.
var ErrNoThreadSlots = errors.New("sched: no free thread slots")

// ErrNoSuchThread is returned when a ThreadID names a slot that has never
// been allocated, or has since been reaped and its generation has moved on.
var ErrNoSuchThread = errors.New("sched: no such thread")

// assert panics via vlog if cond is false. Every precondition violation
// named in spec.md §7 ("lock is held by current thread when releasing",
// "not in interrupt context for sema_down", "thread state is BLOCKED
// before unblock", and so on) goes through this, so it is always logged
// with severity and caller location before the kernel dies, rather than a
// bare panic().
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		vlog.Panicf(format, args...)
	}
}
