// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package mclass

import "sync"

var (
	mu      sync.Mutex
	classes = make(map[string]*Class)
)

// Register adds class to the process-wide catalogue under its Name, for
// callers (like cmd/dpctl) that build modules from a class name string
// rather than an imported *Class value. Called from init() funcs at
// program startup; the catalogue is append-only (nothing removes or
// replaces a class after startup, matching spec §4.2's "immutable
// thereafter"), and Register, Lookup and All all take the same mutex.
func Register(class *Class) {
	mu.Lock()
	defer mu.Unlock()
	classes[class.Name] = class
}

// Lookup returns the registered class with the given name, or nil, false.
func Lookup(name string) (*Class, bool) {
	mu.Lock()
	defer mu.Unlock()
	c, ok := classes[name]
	return c, ok
}

// All returns every registered class, in no particular order.
func All() []*Class {
	mu.Lock()
	defer mu.Unlock()

	out := make([]*Class, 0, len(classes))
	for _, c := range classes {
		out = append(out, c)
	}
	return out
}
