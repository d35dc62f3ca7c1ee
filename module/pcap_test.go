// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package module_test

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/module"
	"github.com/sandia-minimega/dpcore/modules/example"
	"github.com/sandia-minimega/dpcore/namespace"
	"github.com/sandia-minimega/dpcore/worker"
)

// S6 — pcap auto-disable: enable capture on a live ogate against a FIFO
// whose reader hangs up, then push a batch through it. The broken pipe
// should auto-disable capture on that ogate without failing delivery
// (spec §8 S6).
func TestPcapAutoDisableOnBrokenPipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.fifo")
	if err := syscall.Mkfifo(path, 0o600); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}

	ns := namespace.New()
	a, _ := module.CreateModule(ns, "", example.Mid, nil)
	b, _ := module.CreateModule(ns, "", example.Sink, nil)
	if err := module.Connect(a, 0, b, 0); err != nil {
		t.Fatalf("connect: %v", err)
	}

	// Open a reader first so the non-blocking writer open inside
	// EnableTcpdump succeeds (a FIFO writer opened with no reader present
	// fails ENXIO), then close the reader to simulate it hanging up.
	rfd, err := syscall.Open(path, syscall.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}

	if err := a.EnableTcpdump(path, 0, nil); err != nil {
		t.Fatalf("EnableTcpdump: %v", err)
	}
	if !a.Tcpdump(0) {
		t.Fatal("tcpdump not reported enabled right after EnableTcpdump")
	}

	syscall.Close(rfd)

	w := worker.New(0)
	b2 := &batch.Batch{Packets: []*batch.Packet{{Data: []byte{1, 2, 3, 4}}}}
	og := a.OGate(0)
	og.Push(w, b2)

	if a.Tcpdump(0) {
		t.Fatal("tcpdump still enabled after reader hung up; want auto-disabled")
	}

	// The batch must still have been delivered downstream despite the
	// capture failure: the sink's silent_drops should reflect it. b2 holds
	// one packet, so Deadend should account exactly 1.
	if w.SilentDrops != 1 {
		t.Fatalf("silent_drops = %d, want 1 (batch should still be delivered)", w.SilentDrops)
	}
}
