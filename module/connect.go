// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package module

import (
	"github.com/sandia-minimega/dpcore/dperr"
	"github.com/sandia-minimega/dpcore/dplog"
)

func errGateIdxTooLarge(idx uint16) error {
	return dperr.New(dperr.ENOMEM, "gate index %d exceeds MAX_GATES", idx)
}

// Connect wires ogate_idx on prev to igate_idx on next (spec §4.4). Checks
// run in the order spec pins: downstream must support process_batch, both
// indices must be in range, the ogate array grows (may ENOMEM), the ogate
// slot must be free (EBUSY), and the igate array grows (may ENOMEM).
func Connect(prev *Module, ogateIdx uint16, next *Module, igateIdx uint16) error {
	if !next.class.CanBeDownstream() {
		return dperr.New(dperr.EINVAL, "class %q has no process_batch, cannot be a downstream peer", next.class.Name)
	}

	if ogateIdx >= prev.class.NumOGates || ogateIdx >= MaxGates {
		return dperr.New(dperr.EINVAL, "ogate index %d out of range for class %q", ogateIdx, prev.class.Name)
	}
	if igateIdx >= next.class.NumIGates || igateIdx >= MaxGates {
		return dperr.New(dperr.EINVAL, "igate index %d out of range for class %q", igateIdx, next.class.Name)
	}

	ogates, err := growGates(prev.ogates, ogateIdx)
	if err != nil {
		return err
	}
	prev.ogates = ogates

	if IsActiveGate(prev.ogates, ogateIdx) {
		return dperr.New(dperr.EBUSY, "ogate %d on %q is already connected", ogateIdx, prev.name)
	}

	igates, err := growGates(next.igates, igateIdx)
	if err != nil {
		return err
	}
	next.igates = igates

	ig := next.igates[igateIdx]
	if ig == nil {
		ig = &IGate{
			owner:    next,
			idx:      igateIdx,
			entry:    next.class.ProcessBatch,
			entryArg: next,
			upstream: make(map[*OGate]struct{}),
		}
		next.igates[igateIdx] = ig
	}

	og := &OGate{
		owner:         prev,
		idx:           ogateIdx,
		entry:         next.class.ProcessBatch,
		entryArg:      next,
		downstream:    ig,
		downstreamIdx: igateIdx,
	}
	prev.ogates[ogateIdx] = og
	ig.upstream[og] = struct{}{}

	dplog.Info("connected %s:%d -> %s:%d", prev.name, ogateIdx, next.name, igateIdx)
	return nil
}

// Disconnect tears down the edge on prev's ogate_idx. A no-op (success) if
// the slot is already inactive (spec §4.4, §8 idempotence law).
func Disconnect(prev *Module, ogateIdx uint16) error {
	if ogateIdx >= prev.class.NumOGates {
		return dperr.New(dperr.EINVAL, "ogate index %d out of range for class %q", ogateIdx, prev.class.Name)
	}

	if !IsActiveGate(prev.ogates, ogateIdx) {
		return nil
	}

	og := prev.ogates[ogateIdx]
	ig := og.downstream

	delete(ig.upstream, og)
	if len(ig.upstream) == 0 {
		ig.owner.igates[ig.idx] = nil
	}

	prev.ogates[ogateIdx] = nil

	dplog.Info("disconnected %s:%d", prev.name, ogateIdx)
	return nil
}
