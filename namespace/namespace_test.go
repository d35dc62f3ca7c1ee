// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package namespace

import (
	"sort"
	"testing"

	"github.com/sandia-minimega/dpcore/dperr"
)

func TestInsertLookupRemove(t *testing.T) {
	ns := New()

	if err := ns.Insert(Module, "a", 1); err != nil {
		t.Fatal(err)
	}

	if obj, ok := ns.Lookup(Module, "a"); !ok || obj != 1 {
		t.Fatalf("lookup = %v, %v", obj, ok)
	}

	if err := ns.Insert(Module, "a", 2); !dperr.Is(err, dperr.EEXIST) {
		t.Fatalf("expected EEXIST, got %v", err)
	}

	ns.Remove(Module, "a")
	if _, ok := ns.Lookup(Module, "a"); ok {
		t.Fatal("expected a to be removed")
	}

	// remove of a missing name is a no-op
	ns.Remove(Module, "does-not-exist")
}

func TestTypesAreIndependent(t *testing.T) {
	ns := New()
	const other Type = 99

	if err := ns.Insert(Module, "x", "module-x"); err != nil {
		t.Fatal(err)
	}
	if err := ns.Insert(other, "x", "other-x"); err != nil {
		t.Fatalf("same name under a different type should not collide: %v", err)
	}

	mObj, _ := ns.Lookup(Module, "x")
	oObj, _ := ns.Lookup(other, "x")
	if mObj == oObj {
		t.Fatal("types leaked into each other")
	}
}

func TestIteratorSnapshot(t *testing.T) {
	ns := New()
	for _, n := range []string{"a", "b", "c"} {
		if err := ns.Insert(Module, n, n); err != nil {
			t.Fatal(err)
		}
	}

	it := ns.InitIterator(Module)
	defer it.Release()

	// Mutating the namespace after the snapshot was taken must not be
	// observed by the in-flight iterator as a new entry.
	if err := ns.Insert(Module, "d", "d"); err != nil {
		t.Fatal(err)
	}

	var got []string
	for {
		obj, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, obj.(string))
	}
	sort.Strings(got)

	if len(got) != 3 {
		t.Fatalf("expected 3 snapshotted names, got %v", got)
	}
}

func TestIteratorSkipsRemoved(t *testing.T) {
	ns := New()
	for _, n := range []string{"a", "b"} {
		if err := ns.Insert(Module, n, n); err != nil {
			t.Fatal(err)
		}
	}

	it := ns.InitIterator(Module)
	ns.Remove(Module, "a")

	var got []string
	for {
		obj, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, obj.(string))
	}

	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected only b, got %v", got)
	}
}
