// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package worker

import (
	"fmt"
	"strings"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/dplog"
)

// MaxTraceDepth bounds how deep a single worker's call stack may nest
// before-call/after-call pairs. Matches the BESS C implementation's
// MAX_TRACE_DEPTH (original_source/core/module.c, #if SN_TRACE_MODULES).
const MaxTraceDepth = 32

// MaxTraceBufsize bounds the accumulated trace line before End flushes it.
const MaxTraceBufsize = 4096

// CallStack records one worker's call-stack trace for a single task/poll
// invocation: which modules batches traversed, and how deep the fan-out
// went. It is the Go rendering of the C implementation's
// __thread struct callstack.
type CallStack struct {
	depth  int
	indent []int
	cur    int

	newlined bool
	buf      strings.Builder
}

func newCallStack() *CallStack {
	return &CallStack{indent: make([]int, MaxTraceDepth)}
}

// Start begins a trace for one worker iteration driving module mod (typ is
// a short label like "TASK" or "POLL").
func (c *CallStack) Start(workerID int, mod string, typ string) {
	if c.depth != 0 || c.buf.Len() != 0 {
		panic("trace: Start called with a trace already in progress")
	}

	fmt.Fprintf(&c.buf, "Worker %d %-8s | %s", workerID, typ, mod)
	c.cur = c.buf.Len()
}

// BeforeCall records a batch about to cross from `from` to `to`.
func (c *CallStack) BeforeCall(from, to string, b *batch.Batch) {
	if c.depth >= MaxTraceDepth {
		panic("trace: MAX_TRACE_DEPTH exceeded")
	}

	c.indent[c.depth] = c.cur

	if c.newlined {
		fmt.Fprintf(&c.buf, "%*s", c.cur, "")
	}

	line := fmt.Sprintf(" ---(%d)--> %s", b.Count(), to)
	c.buf.WriteString(line)
	c.cur += len(line)

	if c.buf.Len() > MaxTraceBufsize {
		panic("trace: MAX_TRACE_BUFSIZE exceeded")
	}

	c.depth++
	c.newlined = false
}

// AfterCall closes the most recent BeforeCall.
func (c *CallStack) AfterCall() {
	c.depth--
	if c.depth < 0 {
		panic("trace: AfterCall without a matching BeforeCall")
	}

	if !c.newlined {
		c.newlined = true
		c.buf.WriteByte('\n')
	}

	c.cur = c.indent[c.depth]
}

// End flushes the accumulated trace (if print is true) and resets the
// tracer for the next call.
func (c *CallStack) End(print bool) {
	if c.depth != 0 {
		panic("trace: End called with calls still pending")
	}

	if print {
		dplog.Debug("%s", c.buf.String())
	}

	c.buf.Reset()
	c.newlined = false
}
