// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package module

import "github.com/sandia-minimega/dpcore/mclass"

// MaxGates bounds a single gate array and every gate index. Documented per
// spec §6.
const MaxGates = 8192

// OGate is an output gate: the sending side of a directed edge. Spec §3.
type OGate struct {
	owner *Module
	idx   uint16

	downstream    *IGate
	downstreamIdx uint16

	entry    mclass.ProcessBatchFunc
	entryArg *Module

	tcpdump bool
	capture captureSink
}

// Idx returns this ogate's index on its owning module.
func (og *OGate) Idx() uint16 { return og.idx }

// Owner returns the module this ogate belongs to.
func (og *OGate) Owner() *Module { return og.owner }

// Downstream returns the igate this ogate is connected to, or nil if
// inactive.
func (og *OGate) Downstream() *IGate { return og.downstream }

// IGate is an input gate: the receiving side of one or more directed edges
// fanning in from upstream ogates. Spec §3.
type IGate struct {
	owner *Module
	idx   uint16

	entry    mclass.ProcessBatchFunc
	entryArg *Module

	upstream map[*OGate]struct{}
}

// Idx returns this igate's index on its owning module.
func (ig *IGate) Idx() uint16 { return ig.idx }

// Owner returns the module this igate belongs to.
func (ig *IGate) Owner() *Module { return ig.owner }

// NumUpstream reports the current fan-in (spec §8 property: k.igates[0].upstream_set.size).
func (ig *IGate) NumUpstream() int { return len(ig.upstream) }

// IsActiveGate reports whether gates[idx] is a live slot. Generalizes over
// both OGate and IGate arrays (spec §6: is_active_gate(gates, idx)).
func IsActiveGate[T any](gates []*T, idx uint16) bool {
	return int(idx) < len(gates) && gates[idx] != nil
}

// growGates implements the doubling-from-1 growth policy, capped at
// MaxGates (spec §3 "Gate array"): new slots are zero-valued (nil), meaning
// not-yet-active.
func growGates[T any](arr []*T, idx uint16) ([]*T, error) {
	if int(idx) < len(arr) {
		return arr, nil
	}

	newSize := uint16(len(arr))
	if newSize == 0 {
		newSize = 1
	}
	for newSize <= idx && newSize < MaxGates {
		newSize *= 2
	}
	if newSize > MaxGates {
		newSize = MaxGates
	}
	if idx >= newSize {
		return nil, errGateIdxTooLarge(idx)
	}

	out := make([]*T, newSize)
	copy(out, arr)
	return out, nil
}
