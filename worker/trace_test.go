// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package worker

import (
	"strings"
	"testing"

	"github.com/sandia-minimega/dpcore/batch"
)

// TestTraceLifecycle drives the full Start -> BeforeCall -> AfterCall -> End
// sequence a traced worker iteration follows (spec §4.6) and checks the
// rendered call-stack line reflects the calls made.
func TestTraceLifecycle(t *testing.T) {
	w := New(3)
	w.EnableTrace()

	tr := w.Trace()
	if tr == nil {
		t.Fatal("Trace() = nil after EnableTrace")
	}

	b := batch.New()
	b.Append(&batch.Packet{Data: []byte{1, 2, 3, 4}})

	tr.Start(w.ID, "src", "TASK")
	tr.BeforeCall("src", "mid", b)
	tr.BeforeCall("mid", "sink", b)
	tr.AfterCall()
	tr.AfterCall()
	tr.End(false)

	w.DisableTrace()
	if w.Trace() != nil {
		t.Fatal("Trace() != nil after DisableTrace")
	}
}

// TestTraceRendersCallPath exercises the same lifecycle but inspects the
// buffer before End resets it, so the rendered line can be checked for the
// module names and batch count a trace is meant to surface.
func TestTraceRendersCallPath(t *testing.T) {
	tr := newCallStack()

	b := batch.New()
	b.Append(&batch.Packet{Data: []byte{1}})
	b.Append(&batch.Packet{Data: []byte{2}})

	tr.Start(0, "src", "TASK")
	tr.BeforeCall("src", "mid", b)

	rendered := tr.buf.String()
	if !strings.Contains(rendered, "src") || !strings.Contains(rendered, "mid") {
		t.Fatalf("rendered trace %q missing module names", rendered)
	}
	if !strings.Contains(rendered, "(2)") {
		t.Fatalf("rendered trace %q missing batch count", rendered)
	}

	tr.AfterCall()
	tr.End(false)

	if tr.buf.Len() != 0 {
		t.Fatalf("buf not reset after End: %q", tr.buf.String())
	}
}

// TestTraceDepthPanicsPastMax checks BeforeCall enforces MaxTraceDepth, the
// Go rendering of the C implementation's MAX_TRACE_DEPTH guard.
func TestTraceDepthPanicsPastMax(t *testing.T) {
	tr := newCallStack()
	tr.Start(0, "src", "TASK")

	b := batch.New()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic once MaxTraceDepth is exceeded")
		}
	}()

	for i := 0; i <= MaxTraceDepth; i++ {
		tr.BeforeCall("a", "b", b)
	}
}
