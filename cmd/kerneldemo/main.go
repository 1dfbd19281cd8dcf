// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command kerneldemo boots the kos scheduler in-process and runs one of a
// handful of scripted scenarios against it, printing what the scheduler
// decided to do at each step. It exists to make the invariants described by
// the sched package concrete and observable, the way a debugger or a kernel
// trace would for the real thing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kos-kernel/kos/buildinfo"
	"github.com/kos-kernel/kos/internal/bootconfig"
	"github.com/kos-kernel/kos/sched"
)

var (
	tunables   bootconfig.Tunables
	rootFlags  = pflag.NewFlagSet("kerneldemo", pflag.ExitOnError)
	showVer    = rootFlags.Bool("version", false, "print build info and exit")
)

var scenarios = map[string]func(sched.Config){
	"priority-preemption": priorityPreemptionScenario,
	"simple-donation":     simpleDonationScenario,
	"chained-donation":    chainedDonationScenario,
	"multiple-donations":  multipleDonationsScenario,
	"sleep-ordering":      sleepOrderingScenario,
	"condvar-priority":    condvarPriorityScenario,
}

func init() {
	if err := bootconfig.RegisterFlags(rootFlags, &tunables); err != nil {
		panic(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kerneldemo [flags] <scenario>")
	fmt.Fprintln(os.Stderr, "scenarios:")
	for name := range scenarios {
		fmt.Fprintln(os.Stderr, "  "+name)
	}
	fmt.Fprintln(os.Stderr, "  serve-metrics")
	rootFlags.PrintDefaults()
}

func main() {
	if err := rootFlags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *showVer {
		fmt.Println(buildinfo.Info().String())
		return
	}

	args := rootFlags.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if args[0] == "serve-metrics" {
		serveMetrics(tunables.Config(), args[1:])
		return
	}

	scenario, ok := scenarios[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	scenario(tunables.Config())
}
