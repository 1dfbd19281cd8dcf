// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// Priority bounds and scheduling tunables, per spec.md §6.
const (
	minPriority = 0
	maxPriority = 63
	// PriDefault is the priority new threads get unless told otherwise.
	PriDefault = 31

	numPriorities = maxPriority - minPriority + 1
)

// PriMin and PriMax are exported for callers constructing thread priorities.
const (
	PriMin = minPriority
	PriMax = maxPriority
)

func priorityIndex(p int) int {
	assert(p >= minPriority && p <= maxPriority, "priority %d out of range [%d,%d]", p, minPriority, maxPriority)
	return p - minPriority
}

// Config holds the compile-time constants spec.md §6 lists as compile-time
// configuration. This module makes them boot-time (see
// internal/bootconfig), which is why they're a struct instead of literal
// consts, but the defaults and legal ranges are exactly spec.md's.
type Config struct {
	// TickHz is the timer interrupt frequency; legal range [19,1000].
	TickHz int
	// TimeSlice is the number of ticks per quantum before a thread is
	// charged a deferred yield.
	TimeSlice int
	// DonationDepthMax bounds how many links of a donation chain
	// acquire() will walk before giving up tolerantly (spec.md §4.4,
	// §4.7).
	DonationDepthMax int
	// ThreadArenaSize bounds how many live threads can exist at once.
	ThreadArenaSize int
}

// DefaultConfig matches spec.md §6's defaults exactly.
func DefaultConfig() Config {
	return Config{
		TickHz:           100,
		TimeSlice:        4,
		DonationDepthMax: 8,
		ThreadArenaSize:  256,
	}
}

func (c Config) validate() {
	assert(c.TickHz >= 19 && c.TickHz <= 1000, "TickHz %d out of range [19,1000]", c.TickHz)
	assert(c.TimeSlice >= 1, "TimeSlice must be >= 1, got %d", c.TimeSlice)
	assert(c.DonationDepthMax >= 1, "DonationDepthMax must be >= 1, got %d", c.DonationDepthMax)
	assert(c.ThreadArenaSize >= 2, "ThreadArenaSize must be >= 2, got %d", c.ThreadArenaSize)
}
