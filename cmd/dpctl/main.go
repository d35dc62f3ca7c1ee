// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Command dpctl is a small interactive console over the graph runtime: it
// wires up a demo pipeline, then lets an operator list modules and gates
// and drive the source's task by hand, the way bctl drives a running
// bess instance over a control socket. Here it's all in-process.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/sandia-minimega/dpcore/dplog"
	"github.com/sandia-minimega/dpcore/mclass"
	"github.com/sandia-minimega/dpcore/module"
	"github.com/sandia-minimega/dpcore/modules/example"
	_ "github.com/sandia-minimega/dpcore/modules/dnssnoop"
	_ "github.com/sandia-minimega/dpcore/modules/xorcap"
	"github.com/sandia-minimega/dpcore/namespace"
	"github.com/sandia-minimega/dpcore/worker"
)

// demoScheduler hands RegisterTask a no-op Task; dpctl drives the one
// registered task by hand from the "step" console command rather than
// running a real scheduler loop.
type demoScheduler struct{}

type demoTask struct{}

func (demoTask) Destroy() {}

func (demoScheduler) CreateTask(m *module.Module, arg interface{}) (module.Task, error) {
	return demoTask{}, nil
}

func main() {
	flag.Parse()

	if err := dplog.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "dpctl: %v\n", err)
		os.Exit(1)
	}

	ns := namespace.New()
	w := worker.New(0)

	src, err := module.CreateModule(ns, "src", example.Src, nil)
	if err != nil {
		fatalf("create src: %v", err)
	}
	mid, err := module.CreateModule(ns, "mid", example.Mid, nil)
	if err != nil {
		fatalf("create mid: %v", err)
	}
	sink, err := module.CreateModule(ns, "sink", example.Sink, nil)
	if err != nil {
		fatalf("create sink: %v", err)
	}

	if err := module.Connect(src, 0, mid, 0); err != nil {
		fatalf("connect src->mid: %v", err)
	}
	if err := module.Connect(mid, 0, sink, 0); err != nil {
		fatalf("connect mid->sink: %v", err)
	}

	tid := module.RegisterTask(demoScheduler{}, src, nil)
	if tid == module.InvalidTaskID {
		fatalf("register task on src failed")
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("dpctl: src -> mid -> sink ready. Commands: list, classes, step, trace, drops, quit")

	for {
		input, err := line.Prompt("dpctl> ")
		if err != nil {
			break
		}
		line.AppendHistory(input)

		switch strings.TrimSpace(input) {
		case "list":
			listModules(ns)
		case "classes":
			listClasses()
		case "step":
			runTraced(w, src)
		case "trace":
			toggleTrace(w)
		case "drops":
			fmt.Printf("silent_drops on worker %d: %d\n", w.ID, w.SilentDrops)
		case "quit", "exit":
			return
		case "":
			// ignore blank lines
		default:
			fmt.Printf("unknown command: %q\n", input)
		}
	}
}

// runTraced drives src's task once, wrapping the call in Start/End if
// tracing is currently enabled on w so the call-stack hooks in
// module.(*OGate).Push actually fire (spec §4.6).
func runTraced(w *worker.Worker, src *module.Module) {
	tr := w.Trace()
	if tr != nil {
		tr.Start(w.ID, src.Name(), "TASK")
	}

	ok := src.Class().RunTask(w, src, nil)

	if tr != nil {
		tr.End(true)
	}

	if ok {
		fmt.Println("ok: src ran, batch pushed")
	} else {
		fmt.Println("src reported no work done")
	}
}

func toggleTrace(w *worker.Worker) {
	if w.Trace() != nil {
		w.DisableTrace()
		fmt.Println("trace: disabled")
		return
	}
	w.EnableTrace()
	fmt.Println("trace: enabled (logged at debug level on each step)")
}

func listModules(ns *namespace.Namespace) {
	buf := make([]*module.Module, 16)
	n := module.ListModules(ns, buf, 0)
	for _, m := range buf[:n] {
		fmt.Printf("%-8s class=%-6s igates=%d ogates=%d tasks=%d\n",
			m.Name(), m.Class().Name, m.NumIGates(), m.NumOGates(), module.NumModuleTasks(m))
	}
}

func listClasses() {
	for _, c := range mclass.All() {
		fmt.Printf("%-10s igates=%d ogates=%d downstream=%v tasks=%v\n",
			c.Name, c.NumIGates, c.NumOGates, c.CanBeDownstream(), c.CanRunTasks())
	}
}

func fatalf(format string, args ...interface{}) {
	dplog.Error(format, args...)
	os.Exit(1)
}
