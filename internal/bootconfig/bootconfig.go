// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bootconfig registers the kernel's boot-time tunables as command
// line flags, colocating the flag definitions with the sched.Config they
// populate instead of scattering package-level flag.Var calls across main.
package bootconfig

import (
	"github.com/spf13/pflag"

	"github.com/kos-kernel/kos/cmd/pflagvar"
	"github.com/kos-kernel/kos/sched"
)

// Tunables mirrors sched.Config field for field; its struct tags are the
// source of truth for flag names, defaults, and usage strings, matching
// sched.DefaultConfig().
type Tunables struct {
	TickHz           int `flag:"tick-hz,100,timer interrupt frequency in Hz"`
	TimeSlice        int `flag:"time-slice,4,ticks per scheduling quantum"`
	DonationDepthMax int `flag:"donation-depth-max,8,maximum priority donation chain length"`
	ThreadArenaSize  int `flag:"thread-arena-size,256,maximum number of live threads"`
}

// RegisterFlags adds every Tunables field to fs.
func RegisterFlags(fs *pflag.FlagSet, t *Tunables) error {
	return pflagvar.RegisterFlagsInStruct(fs, "flag", t, nil, nil)
}

// Config converts the parsed tunables into a sched.Config.
func (t *Tunables) Config() sched.Config {
	return sched.Config{
		TickHz:           t.TickHz,
		TimeSlice:        t.TimeSlice,
		DonationDepthMax: t.DonationDepthMax,
		ThreadArenaSize:  t.ThreadArenaSize,
	}
}
