// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package worker models the single-threaded, cooperative scheduler context
// that drives tasks and batch delivery (spec §5). Unlike the BESS C
// implementation, which keeps silent_drops and the call-stack trace buffer
// as __thread globals, Worker is an explicit struct threaded through every
// ProcessBatchFunc/RunTaskFunc call — per spec §9's design note, this lets
// tests instantiate several independent runtimes in the same process.
package worker

import "github.com/sandia-minimega/dpcore/batch"

// Worker is a single worker's fast-path context: its silent-drop counter
// and (optionally) its call-stack trace. There is no lock here by design —
// spec §5 says "the core never takes locks on the fast path", and a Worker
// is only ever touched by the one goroutine driving it.
type Worker struct {
	// ID identifies this worker for logging/trace output.
	ID int

	// SilentDrops counts packets released by Deadend without per-packet
	// logging (spec §9 OQ2: "per-worker counters ... aggregation across
	// workers is the caller's concern").
	SilentDrops uint64

	trace *CallStack
}

// New returns a Worker context for the given id. Tracing is disabled until
// EnableTrace is called.
func New(id int) *Worker {
	return &Worker{ID: id}
}

// Deadend is the sink hook every terminal module calls: it accounts the
// batch to SilentDrops and drops the packet references. There is nothing
// else to free in Go — the buffer allocator is out of scope (spec §1
// non-goal b) and packet bytes are ordinary garbage-collected memory.
func (w *Worker) Deadend(b *batch.Batch) {
	w.SilentDrops += uint64(b.Count())
}

// EnableTrace turns on call-stack tracing for this worker (spec §4.6).
func (w *Worker) EnableTrace() {
	w.trace = newCallStack()
}

// DisableTrace turns off call-stack tracing for this worker.
func (w *Worker) DisableTrace() {
	w.trace = nil
}

// Trace returns this worker's call-stack tracer, or nil if tracing is
// disabled. Callers on the hot path should check for nil before calling
// trace hooks to avoid the overhead when tracing is off.
func (w *Worker) Trace() *CallStack {
	return w.trace
}
