// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package diag implements the graph runtime's optional per-edge packet
// capture (spec §4.6, §6). It is adapted from minimega's
// src/bridge/capture.go, which already does exactly this job — open a pcap
// sink, write packets as they're seen — for a whole OVS bridge mirror; here
// it's narrowed to a single gate's batch stream.
package diag

import (
	"errors"
	"os"
	"syscall"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"golang.org/x/net/bpf"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/dplog"
)

// PcapSnaplen is the maximum packet length the capture sink will write.
// Packets longer than this are a contract violation per spec §4.6.
const PcapSnaplen = 65536

// ErrBrokenPipe is returned by WriteBatch when the underlying sink has hung
// up (EPIPE), so the caller can auto-disable capture on that edge per spec
// §4.6.
var ErrBrokenPipe = errors.New("diag: capture sink closed (EPIPE)")

// PcapWriter is a single gate's capture sink: an open file (or FIFO) holding
// a pcap stream, plus an optional compiled BPF filter program.
type PcapWriter struct {
	f  *os.File
	w  *pcapgo.Writer
	vm *bpf.VM
}

// NewPcapWriter opens path for non-blocking write, writes the pcap file
// header, and optionally compiles prog into a BPF filter machine applied to
// every packet before it's written. A nil prog captures everything.
//
// The non-blocking open mirrors bridge/capture.go / the C implementation's
// enable_tcpdump: a capture consumer reading a FIFO slower than the
// dataplane produces packets must never stall the dataplane, so writes are
// best-effort and EPIPE/EAGAIN is handled by the caller, not retried here.
func NewPcapWriter(path string, prog []bpf.Instruction) (*PcapWriter, error) {
	fd, err := syscall.Open(path, syscall.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	// Looooong time ago Linux ignored O_NONBLOCK in open(). Set it again,
	// just in case (same defensive re-set the C implementation does).
	if err := syscall.SetNonblock(fd, true); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	f := os.NewFile(uintptr(fd), path)

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(PcapSnaplen, layers.LinkTypeEthernet); err != nil {
		f.Close()
		return nil, err
	}

	pw := &PcapWriter{f: f, w: w}

	if len(prog) > 0 {
		raw, err := bpf.Assemble(prog)
		if err != nil {
			f.Close()
			return nil, err
		}
		vm, err := bpf.NewVM(raw)
		if err != nil {
			f.Close()
			return nil, err
		}
		pw.vm = vm
	}

	return pw, nil
}

// WriteBatch writes every packet in b that passes the filter (if any) as a
// pcap record. It returns ErrBrokenPipe if the sink hung up, in which case
// the caller should disable capture on this edge; any other write failure
// is also returned so the caller can decide, but is not assumed fatal to
// the edge.
//
// Oversized packets (> PcapSnaplen) are dropped from the capture only
// (spec §9 OQ3) — capture is a diagnostic, and truncating or panicking
// would either corrupt the forensic record or crash a fast path that an
// optional tool attached itself to.
func (pw *PcapWriter) WriteBatch(b *batch.Batch) error {
	for _, pkt := range b.Packets {
		if len(pkt.Data) > PcapSnaplen {
			dplog.Debug("diag: dropping oversized packet from capture (%d bytes)", len(pkt.Data))
			continue
		}

		if pw.vm != nil {
			n, err := pw.vm.Run(pkt.Data)
			if err != nil {
				dplog.Error("diag: bpf filter error: %v", err)
				continue
			}
			if n == 0 {
				continue // filtered out; still delivered downstream by the caller
			}
		}

		if err := pw.w.WritePacket(pkt.CI, pkt.Data); err != nil {
			if errors.Is(err, syscall.EPIPE) {
				return ErrBrokenPipe
			}
			return err
		}
	}

	return nil
}

// Close closes the underlying sink.
func (pw *PcapWriter) Close() error {
	return pw.f.Close()
}
