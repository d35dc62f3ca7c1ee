// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package example provides three minimal module classes — Src, Mid, and
// Sink — used by the module package's own scenario tests and by cmd/dpctl's
// demo pipeline. They exist purely to exercise the graph runtime; none of
// them inspect or transform packet payloads.
package example

import (
	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/mclass"
	"github.com/sandia-minimega/dpcore/worker"
)

// srcBatchSize is how many packets Src emits per RunTask call.
const srcBatchSize = 4

// Src is a source: one ogate, no igates, no process_batch. Its RunTask hook
// manufactures a fixed-size batch of one-byte, zeroed packets and pushes it out ogate
// 0 every time it's scheduled.
var Src = &mclass.Class{
	Name:      "Src",
	NumOGates: 1,
	NumIGates: 0,
	RunTask: func(w *worker.Worker, m mclass.ModuleHandle, arg interface{}) bool {
		b := batch.New()
		for i := 0; i < srcBatchSize; i++ {
			b.Append(&batch.Packet{Data: make([]byte, 1)})
		}
		if err := m.Push(w, 0, b); err != nil {
			return false
		}
		return true
	},
}

// Mid is a pure passthrough: one igate, one ogate, forwards every batch it
// receives on igate 0 straight out ogate 0 unmodified.
var Mid = &mclass.Class{
	Name:      "Mid",
	NumIGates: 1,
	NumOGates: 1,
	ProcessBatch: func(w *worker.Worker, m mclass.ModuleHandle, b *batch.Batch) {
		m.Push(w, 0, b)
	},
}

// Sink is a terminal: one igate, no ogates. Anything delivered to it is
// counted as a silent drop on the worker that delivered it (spec §4.3's
// default deadend behavior).
var Sink = &mclass.Class{
	Name:      "Sink",
	NumIGates: 1,
	NumOGates: 0,
	ProcessBatch: func(w *worker.Worker, m mclass.ModuleHandle, b *batch.Batch) {
		w.Deadend(b)
	},
}

func init() {
	mclass.Register(Src)
	mclass.Register(Mid)
	mclass.Register(Sink)
}
