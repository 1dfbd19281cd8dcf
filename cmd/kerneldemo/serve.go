// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/kos-kernel/kos/internal/metrics"
	"github.com/kos-kernel/kos/sched"
	"github.com/kos-kernel/kos/vlog"
)

// serveMetrics boots a kernel with a Prometheus-backed metrics sink, runs a
// small background workload so the ready-queue and tick counters move, and
// serves /metrics until killed.
func serveMetrics(cfg sched.Config, args []string) {
	fs := pflag.NewFlagSet("serve-metrics", pflag.ExitOnError)
	addr := fs.String("addr", ":9090", "address to serve /metrics on")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	reg := prometheus.NewRegistry()
	sink := metrics.NewSink(reg)

	k := sched.NewKernel(cfg)
	k.SetMetricsSink(sink)
	k.Boot("main", sched.PriDefault)

	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("worker-%d", i)
		k.ThreadCreate(name, sched.PriDefault, func(k *sched.Kernel, _ interface{}) {
			for {
				k.TimerMSleep(250)
				k.Checkpoint()
			}
		}, nil)
	}

	http.Handle("/metrics", metrics.Handler(reg))
	vlog.VI(1).Infof("serving metrics on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		vlog.Panicf("serve-metrics: %v", err)
	}
}
