// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package xorcap provides an encapsulating module class that seals every
// packet payload it forwards with ChaCha20-Poly1305, the way an encaps
// module in the original dataplane would wrap a packet for tunneling. It
// is a demonstration class, not a production encryption scheme: the key is
// fixed at construction time via its Init argument and there is no replay
// protection beyond the random nonce per packet.
package xorcap

import (
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/dperr"
	"github.com/sandia-minimega/dpcore/mclass"
	"github.com/sandia-minimega/dpcore/worker"
)

type state struct {
	aead cipher.AEAD
}

// Class is a one-igate, one-ogate module: it seals every packet received
// on igate 0 and forwards the sealed form out ogate 0. Init's arg must be a
// 32-byte key ([]byte).
var Class = &mclass.Class{
	Name:      "XORCap",
	NumIGates: 1,
	NumOGates: 1,
	Init: func(m mclass.ModuleHandle, arg interface{}) error {
		key, ok := arg.([]byte)
		if !ok || len(key) != chacha20poly1305.KeySize {
			return dperr.New(dperr.EINVAL, "xorcap: arg must be a %d-byte key", chacha20poly1305.KeySize)
		}

		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return dperr.New(dperr.EINVAL, "xorcap: %v", err)
		}

		m.SetPrivate(&state{aead: aead})
		return nil
	},
	ProcessBatch: func(w *worker.Worker, m mclass.ModuleHandle, b *batch.Batch) {
		st := m.Private().(*state)

		sealed := batch.New()
		for _, pkt := range b.Packets {
			nonce := make([]byte, st.aead.NonceSize())
			if _, err := rand.Read(nonce); err != nil {
				continue
			}
			ct := st.aead.Seal(nonce, nonce, pkt.Data, nil)
			sealed.Append(&batch.Packet{Data: ct, CI: pkt.CI})
		}

		if err := m.Push(w, 0, sealed); err != nil {
			w.Deadend(sealed)
		}
	},
}

func init() {
	mclass.Register(Class)
}
