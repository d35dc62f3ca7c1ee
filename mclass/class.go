// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package mclass implements the module-class catalogue: the immutable,
// process-wide descriptors that module instances are stamped from (spec
// §3 "Module class", §4.2).
package mclass

import (
	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/worker"
)

// InitFunc runs once, at create_module time, to set up a module's private
// state from a caller-validated argument. A non-nil error aborts creation.
type InitFunc func(m ModuleHandle, arg interface{}) error

// DeinitFunc runs once, at destroy_module time, before gates and tasks are
// torn down.
type DeinitFunc func(m ModuleHandle)

// ProcessBatchFunc is the downstream entry point stored in every gate: the
// hot-path call that hands a batch to a module. It must not block or
// suspend (spec §5).
type ProcessBatchFunc func(w *worker.Worker, m ModuleHandle, b *batch.Batch)

// RunTaskFunc produces work for an externally-scheduled task slot. Returns
// whether it did any work, so a scheduler can distinguish a busy task from
// an idle poll.
type RunTaskFunc func(w *worker.Worker, m ModuleHandle, arg interface{}) bool

// ModuleHandle is the subset of *module.Module that module classes need: a
// name (for logging), a place to stash private state, and a way to forward
// a batch out one of its own ogates. It is an interface, not a concrete
// *module.Module, specifically so that mclass never imports module (module
// imports mclass, so the reverse import would be a cycle). Push is how a class's ProcessBatch/RunTask hook sends work
// onward without needing the concrete gate types.
type ModuleHandle interface {
	Name() string
	Private() interface{}
	SetPrivate(interface{})
	Push(w *worker.Worker, ogateIdx uint16, b *batch.Batch) error
}

// Class is an immutable module-class descriptor. Classes are registered
// once at startup (see Register) and never mutated afterward — the
// dataplane entry function snapshotted into a gate at connect time is
// always this Class's ProcessBatch (spec invariant 5).
type Class struct {
	// Name is the class's identifier, e.g. "IPChecksum". Used to derive a
	// default instance name (CamelCase -> snake_case + "%d").
	Name string

	// DefaultInstanceName, if set, is used verbatim (plus "%d") instead of
	// deriving one from Name.
	DefaultInstanceName string

	// NumIGates and NumOGates are compile-time maxima for this class; gate
	// indices must stay below both this and MAX_GATES.
	NumIGates uint16
	NumOGates uint16

	Init         InitFunc
	Deinit       DeinitFunc
	ProcessBatch ProcessBatchFunc
	RunTask      RunTaskFunc
}

// CanBeDownstream reports whether a module of this class may be the
// downstream side of a connection (spec §4.2: "A class whose process_batch
// is null may not be the downstream side of any connection").
func (c *Class) CanBeDownstream() bool {
	return c.ProcessBatch != nil
}

// CanRunTasks reports whether a module of this class may host tasks (spec
// §4.2: "A class whose run_task is null may not host tasks").
func (c *Class) CanRunTasks() bool {
	return c.RunTask != nil
}
