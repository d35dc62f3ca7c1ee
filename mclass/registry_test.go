// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package mclass

import "testing"

func TestRegisterLookup(t *testing.T) {
	c := &Class{Name: "registry-test-class"}
	Register(c)

	got, ok := Lookup("registry-test-class")
	if !ok || got != c {
		t.Fatalf("Lookup = %v, %v; want %v, true", got, ok, c)
	}

	if _, ok := Lookup("no-such-class"); ok {
		t.Fatal("Lookup found a class that was never registered")
	}
}

func TestAllIncludesRegistered(t *testing.T) {
	c := &Class{Name: "registry-test-all"}
	Register(c)

	found := false
	for _, got := range All() {
		if got == c {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("All() did not include a just-registered class")
	}
}
