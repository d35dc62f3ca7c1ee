// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package namespace implements the process-wide typed name registry the
// graph runtime resolves module names through (spec §4.1). It is the Go
// rendering of the BESS `ns_insert`/`ns_lookup`/`ns_remove`/iterator
// quadruple in original_source/core/module.c, generalized from a single
// global to an instantiable type so a process can run more than one
// independent runtime (useful for tests).
package namespace

import (
	"sync"

	"github.com/sandia-minimega/dpcore/dperr"
)

// Type tags the kind of object stored under a name. The spec names only
// one type (MODULE) but leaves room for more, so this stays a type rather
// than being folded away into a single map[string]any.
type Type int

const (
	// Module is the only namespace type the graph runtime uses.
	Module Type = iota
)

// Namespace is a typed (Type, name) -> object registry. All graph mutation
// (create/destroy/connect/disconnect) is expected to be serialized by the
// caller (spec §5: "mutated only under the caller-provided serialization"),
// so Namespace itself only needs to protect against concurrent insert and a
// concurrent snapshot iterator being requested, not pipeline the packet fast
// path through a lock.
type Namespace struct {
	mu   sync.Mutex
	objs map[Type]map[string]interface{}
}

// New returns an empty Namespace.
func New() *Namespace {
	return &Namespace{objs: make(map[Type]map[string]interface{})}
}

// Insert adds name under type t. Returns a *dperr.Error{Code: EEXIST} if the
// name is already taken within t.
func (ns *Namespace) Insert(t Type, name string, obj interface{}) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	m, ok := ns.objs[t]
	if !ok {
		m = make(map[string]interface{})
		ns.objs[t] = m
	}

	if _, exists := m[name]; exists {
		return dperr.New(dperr.EEXIST, "name already exists: %s", name)
	}

	m[name] = obj
	return nil
}

// Lookup returns the object registered under (t, name), or nil, false.
func (ns *Namespace) Lookup(t Type, name string) (interface{}, bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	obj, ok := ns.objs[t][name]
	return obj, ok
}

// Remove deletes name from t. A no-op if the name isn't present.
func (ns *Namespace) Remove(t Type, name string) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	delete(ns.objs[t], name)
}

// Iterator walks a snapshot of the names registered under a Type at the
// moment InitIterator was called. It is stable under concurrent no-ops but,
// per spec §4.1, is not required to be safe against concurrent insert or
// remove — the caller serializes graph mutation.
type Iterator struct {
	ns   *Namespace
	typ  Type
	keys []string
	idx  int
}

// InitIterator snapshots the current names under t.
func (ns *Namespace) InitIterator(t Type) *Iterator {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	keys := make([]string, 0, len(ns.objs[t]))
	for k := range ns.objs[t] {
		keys = append(keys, k)
	}

	return &Iterator{ns: ns, typ: t, keys: keys}
}

// Next returns the next object in the snapshot, or nil, false when exhausted.
// Names removed after InitIterator was called are skipped rather than
// returned as stale values.
func (it *Iterator) Next() (interface{}, bool) {
	for it.idx < len(it.keys) {
		name := it.keys[it.idx]
		it.idx++

		if obj, ok := it.ns.Lookup(it.typ, name); ok {
			return obj, true
		}
	}
	return nil, false
}

// Release ends the iteration. Namespace's iterator holds no resources
// beyond the snapshot slice, but Release is kept as a named operation to
// match the insert/lookup/remove/iterator quadruple spec §6 calls stable.
func (it *Iterator) Release() {
	it.keys = nil
}
