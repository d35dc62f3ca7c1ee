// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package batch defines the opaque packet-batch handle that crosses every
// gate in the graph runtime. The core treats batches as opaque (spec §1
// non-goal b: "the core treats batches as opaque handles") — this package
// exists only so that diagnostics (pcap capture, trace) have something
// concrete to look at without the module/gate fabric caring what's inside.
package batch

import "github.com/google/gopacket"

// MaxBatch bounds how many packets a single batch may carry, matching the
// "bounded set of packet references" in the glossary's definition of Batch.
const MaxBatch = 32

// Packet is one packet reference inside a Batch. CaptureInfo carries the
// timestamp and lengths pcap capture needs; it is populated by whatever
// produced the packet (a source module, or a test), not by the gate fabric.
type Packet struct {
	Data []byte
	CI   gopacket.CaptureInfo
}

// Batch is the opaque handle pushed across a gate. There is no implicit
// queueing or copying on an edge (spec §4.4): a Batch handed to ProcessBatch
// is that downstream module's to forward or release.
type Batch struct {
	Packets []*Packet
}

// New returns an empty batch with capacity for MaxBatch packets.
func New() *Batch {
	return &Batch{Packets: make([]*Packet, 0, MaxBatch)}
}

// Count returns the number of packets currently in the batch.
func (b *Batch) Count() int {
	if b == nil {
		return 0
	}
	return len(b.Packets)
}

// Append adds a packet to the batch. Returns false if the batch is full.
func (b *Batch) Append(p *Packet) bool {
	if len(b.Packets) >= MaxBatch {
		return false
	}
	b.Packets = append(b.Packets, p)
	return true
}
