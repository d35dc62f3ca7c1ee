// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package dnssnoop provides a terminal module class that decodes DNS
// queries out of the UDP/53 payloads it receives and logs the queried
// names. It exists to give the graph runtime a module class that actually
// looks inside packet bytes, the way a real diagnostic or telemetry module
// would.
package dnssnoop

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/miekg/dns"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/dplog"
	"github.com/sandia-minimega/dpcore/mclass"
	"github.com/sandia-minimega/dpcore/worker"
)

// Class is a one-igate, zero-ogate sink: anything delivered to it is parsed
// as an Ethernet/IPv4-or-IPv6/UDP frame, and if the UDP payload looks like a
// DNS message, each question's name is logged. Non-DNS traffic and
// unparseable frames are silently deadended, same as example.Sink.
var Class = &mclass.Class{
	Name:      "DNSSnoop",
	NumIGates: 1,
	ProcessBatch: func(w *worker.Worker, m mclass.ModuleHandle, b *batch.Batch) {
		for _, pkt := range b.Packets {
			snoop(m.Name(), pkt)
		}
		w.Deadend(b)
	},
}

func init() {
	mclass.Register(Class)
}

func snoop(moduleName string, pkt *batch.Packet) {
	p := gopacket.NewPacket(pkt.Data, layers.LayerTypeEthernet, gopacket.DecodeOptions{
		Lazy:   true,
		NoCopy: true,
	})

	udpLayer := p.Layer(layers.LayerTypeUDP)
	if udpLayer == nil {
		return
	}
	udp, ok := udpLayer.(*layers.UDP)
	if !ok || (udp.DstPort != 53 && udp.SrcPort != 53) {
		return
	}

	msg := new(dns.Msg)
	if err := msg.Unpack(udp.Payload); err != nil {
		return
	}

	for _, q := range msg.Question {
		dplog.Info("%s: dns query %s %s", moduleName, dns.TypeToString[q.Qtype], q.Name)
	}
}
