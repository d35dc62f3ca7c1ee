// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package xorcap

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/mclass"
	"github.com/sandia-minimega/dpcore/module"
	"github.com/sandia-minimega/dpcore/namespace"
	"github.com/sandia-minimega/dpcore/worker"
)

func TestSealedPayloadDiffersFromPlaintext(t *testing.T) {
	ns := namespace.New()

	key := bytes.Repeat([]byte{0x42}, chacha20poly1305.KeySize)
	enc, err := module.CreateModule(ns, "", Class, key)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// A sink like example.Sink that also keeps the batch it was handed, so
	// the sealed bytes can be inspected.
	var delivered *batch.Batch
	recorder := &mclass.Class{
		Name:      "Recorder",
		NumIGates: 1,
		ProcessBatch: func(w *worker.Worker, m mclass.ModuleHandle, b *batch.Batch) {
			delivered = b
			w.Deadend(b)
		},
	}
	sink, _ := module.CreateModule(ns, "", recorder, nil)
	if err := module.Connect(enc, 0, sink, 0); err != nil {
		t.Fatalf("connect: %v", err)
	}

	plaintext := []byte("hello dataplane")
	b := &batch.Batch{Packets: []*batch.Packet{{Data: plaintext}}}

	w := worker.New(0)
	enc.Class().ProcessBatch(w, enc, b)

	if w.SilentDrops != 1 {
		t.Fatalf("silent_drops = %d, want 1 (sealed packet should reach sink)", w.SilentDrops)
	}

	if delivered == nil || len(delivered.Packets) != 1 {
		t.Fatalf("sink did not receive exactly one sealed packet: %v", delivered)
	}
	sealed := delivered.Packets[0].Data
	if bytes.Equal(sealed, plaintext) {
		t.Fatal("sealed payload equals the plaintext")
	}
	if want := chacha20poly1305.NonceSize + len(plaintext) + chacha20poly1305.Overhead; len(sealed) != want {
		t.Fatalf("sealed length = %d, want %d (nonce + plaintext + tag)", len(sealed), want)
	}
}

func TestInitRejectsWrongKeySize(t *testing.T) {
	ns := namespace.New()

	_, err := module.CreateModule(ns, "", Class, []byte("too short"))
	if err == nil {
		t.Fatal("expected an error for a short key, got nil")
	}
}
