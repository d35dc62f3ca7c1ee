// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package module

import (
	"errors"

	"golang.org/x/net/bpf"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/dperr"
	"github.com/sandia-minimega/dpcore/diag"
	"github.com/sandia-minimega/dpcore/dplog"
	"github.com/sandia-minimega/dpcore/worker"
)

// captureSink is the subset of *diag.PcapWriter an ogate needs. Kept as an
// interface so module doesn't have to import gopacket/BPF types beyond the
// EnableTcpdump signature itself.
type captureSink interface {
	WriteBatch(b *batch.Batch) error
	Close() error
}

// Push is the batch-delivery hot path (spec §4.4): if diagnostics are
// enabled on this ogate, snapshot the batch to the pcap sink first, then
// invoke the gate's stored entry function with its stored downstream
// argument. There is no implicit queueing or copying here — the downstream
// ProcessBatch takes ownership of b.
func (og *OGate) Push(w *worker.Worker, b *batch.Batch) {
	if og.tcpdump && og.capture != nil {
		if err := og.capture.WriteBatch(b); err != nil {
			if errors.Is(err, diag.ErrBrokenPipe) {
				dplog.Debug("capture on %s:%d: sink closed, disabling", og.owner.name, og.idx)
				og.capture.Close()
				og.capture = nil
				og.tcpdump = false
			} else {
				dplog.Error("capture on %s:%d: %v", og.owner.name, og.idx, err)
			}
		}
	}

	if tr := w.Trace(); tr != nil {
		tr.BeforeCall(og.owner.name, og.entryArg.name, b)
		og.entry(w, og.entryArg, b)
		tr.AfterCall()
		return
	}

	og.entry(w, og.entryArg, b)
}

// EnableTcpdump attaches a pcap capture sink to an active ogate, optionally
// filtering packets through a compiled BPF program before they're written
// (spec §4.6, extended per SPEC_FULL.md §4.6). Fails EINVAL if the ogate
// isn't active.
func (m *Module) EnableTcpdump(path string, ogateIdx uint16, prog []bpf.Instruction) error {
	if !IsActiveGate(m.ogates, ogateIdx) {
		return dperr.New(dperr.EINVAL, "ogate %d on %q is not active", ogateIdx, m.name)
	}

	pw, err := diag.NewPcapWriter(path, prog)
	if err != nil {
		return err
	}

	og := m.ogates[ogateIdx]
	og.capture = pw
	og.tcpdump = true

	dplog.Info("enabled tcpdump on %s:%d -> %s", m.name, ogateIdx, path)
	return nil
}

// DisableTcpdump detaches and closes the capture sink on an active ogate.
func (m *Module) DisableTcpdump(ogateIdx uint16) error {
	if !IsActiveGate(m.ogates, ogateIdx) {
		return dperr.New(dperr.EINVAL, "ogate %d on %q is not active", ogateIdx, m.name)
	}

	og := m.ogates[ogateIdx]
	if !og.tcpdump {
		return dperr.New(dperr.EINVAL, "tcpdump not enabled on %s:%d", m.name, ogateIdx)
	}

	err := og.capture.Close()
	og.capture = nil
	og.tcpdump = false

	dplog.Info("disabled tcpdump on %s:%d", m.name, ogateIdx)
	return err
}

// Tcpdump reports whether capture is currently enabled on ogateIdx.
func (m *Module) Tcpdump(ogateIdx uint16) bool {
	if !IsActiveGate(m.ogates, ogateIdx) {
		return false
	}
	return m.ogates[ogateIdx].tcpdump
}

// OGate returns the ogate at idx, or nil if inactive/out of range. Exposed
// so tests and demo code can call Push directly without reaching into
// unexported fields.
func (m *Module) OGate(idx uint16) *OGate {
	if !IsActiveGate(m.ogates, idx) {
		return nil
	}
	return m.ogates[idx]
}

// IGate returns the igate at idx, or nil if inactive/out of range.
func (m *Module) IGate(idx uint16) *IGate {
	if !IsActiveGate(m.igates, idx) {
		return nil
	}
	return m.igates[idx]
}

// Push sends b out m's ogate at ogateIdx, running the downstream ProcessBatch
// hook stored there. This is how a class's own ProcessBatch or RunTask
// forwards work onward through mclass.ModuleHandle, without needing the
// concrete gate types (spec §4.4).
func (m *Module) Push(w *worker.Worker, ogateIdx uint16, b *batch.Batch) error {
	og := m.OGate(ogateIdx)
	if og == nil {
		return dperr.New(dperr.EINVAL, "ogate %d on %q is not active", ogateIdx, m.name)
	}
	og.Push(w, b)
	return nil
}
