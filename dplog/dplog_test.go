// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package dplog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	sink := new(bytes.Buffer)
	defer DelLogger("test-level")

	AddLogger("test-level", sink, WARN)

	Debugln("should not appear")
	if sink.Len() != 0 {
		t.Fatalf("debug message leaked through WARN logger: %q", sink.String())
	}

	Warnln("should appear")
	if !strings.Contains(sink.String(), "should appear") {
		t.Fatalf("warn got: %q", sink.String())
	}
}

func TestMultiLogger(t *testing.T) {
	sink1 := new(bytes.Buffer)
	sink2 := new(bytes.Buffer)
	defer DelLogger("sink1")
	defer DelLogger("sink2")

	AddLogger("sink1", sink1, DEBUG)
	AddLogger("sink2", sink2, ERROR)

	Infoln("hello")

	if !strings.Contains(sink1.String(), "hello") {
		t.Fatalf("sink1 got: %q", sink1.String())
	}
	if strings.Contains(sink2.String(), "hello") {
		t.Fatalf("sink2 should not have seen info: %q", sink2.String())
	}
}

func TestSetGetLevel(t *testing.T) {
	defer DelLogger("level-rw")

	AddLogger("level-rw", new(bytes.Buffer), INFO)

	if lvl, err := GetLevel("level-rw"); err != nil || lvl != INFO {
		t.Fatalf("GetLevel = %v, %v", lvl, err)
	}

	if err := SetLevel("level-rw", ERROR); err != nil {
		t.Fatal(err)
	}
	if lvl, err := GetLevel("level-rw"); err != nil || lvl != ERROR {
		t.Fatalf("GetLevel after SetLevel = %v, %v", lvl, err)
	}

	if _, err := GetLevel("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown logger")
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{"debug": DEBUG, "info": INFO, "warn": WARN, "error": ERROR, "fatal": FATAL} {
		got, err := ParseLevel(s)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", s, got, err, want)
		}
	}

	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
