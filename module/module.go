// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package module implements the graph runtime's core: module instance
// lifecycle, the gate fabric, task slots, and the batch-delivery hot path
// (spec §3, §4.3–§4.5). It is the direct Go counterpart of
// original_source/core/module.c.
package module

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sandia-minimega/dpcore/batch"
	"github.com/sandia-minimega/dpcore/dperr"
	"github.com/sandia-minimega/dpcore/dplog"
	"github.com/sandia-minimega/dpcore/mclass"
	"github.com/sandia-minimega/dpcore/namespace"
	"github.com/sandia-minimega/dpcore/worker"
)

// ModuleNameLen bounds a module's name, matching spec §6's documented
// MODULE_NAME_LEN.
const ModuleNameLen = 128

// Module is a named, typed node in the forwarding graph: a class, opaque
// private state, gate arrays, and task slots (spec §3).
type Module struct {
	name    string
	class   *mclass.Class
	private interface{}

	igates []*IGate
	ogates []*OGate

	tasks [MaxTasksPerModule]Task
}

// Name returns the module's namespace-unique name.
func (m *Module) Name() string { return m.name }

// Private returns the per-instance state set by Class.Init via SetPrivate.
func (m *Module) Private() interface{} { return m.private }

// SetPrivate stores per-instance state. Called by a class's Init hook;
// Module implements mclass.ModuleHandle so classes never need to import
// this package.
func (m *Module) SetPrivate(v interface{}) { m.private = v }

// Class returns the module's class descriptor.
func (m *Module) Class() *mclass.Class { return m.class }

// NumOGates and NumIGates report the current (grown) size of each gate
// array, not the class maximum — mirrors struct gates.curr_size in the C
// implementation.
func (m *Module) NumOGates() int { return len(m.ogates) }
func (m *Module) NumIGates() int { return len(m.igates) }

// CreateModule allocates a new module of the given class, names it
// (explicitly, or by deriving a default from the class), runs the class's
// Init hook, and registers it in ns. See spec §4.3.
func CreateModule(ns *namespace.Namespace, name string, class *mclass.Class, arg interface{}) (*Module, error) {
	if name != "" {
		if _, ok := FindModule(ns, name); ok {
			return nil, dperr.New(dperr.EEXIST, "module %q already exists", name)
		}
	}

	m := &Module{class: class}

	if name == "" {
		n, err := defaultName(ns, class)
		if err != nil {
			return nil, err
		}
		name = n
	} else if len(name) >= ModuleNameLen {
		return nil, dperr.New(dperr.EINVAL, "module name %q exceeds MODULE_NAME_LEN", name)
	}
	m.name = name

	if class.Init != nil {
		if err := class.Init(m, arg); err != nil {
			return nil, err
		}
	}

	if err := ns.Insert(namespace.Module, m.name, m); err != nil {
		return nil, err
	}

	dplog.Info("created module: %s (class %s)", m.name, class.Name)
	return m, nil
}

// DestroyModule tears a module down: Deinit, then every upstream and
// downstream edge disconnected, then every task destroyed, then removed
// from ns. It is best-effort and infallible — spec §4.3: "destroy_module is
// tolerant: it proceeds even on partially-constructed modules", and leaves
// no dangling namespace entry or gate reference even if a sub-step would
// otherwise fail (disconnect itself cannot fail on an active gate).
func DestroyModule(ns *namespace.Namespace, m *Module) {
	if m.class.Deinit != nil {
		m.class.Deinit(m)
	}

	// Disconnect upstream modules. Snapshot each igate's upstream set
	// before iterating — Disconnect mutates it out from under us.
	for _, ig := range m.igates {
		if ig == nil {
			continue
		}

		upstream := make([]*OGate, 0, len(ig.upstream))
		for og := range ig.upstream {
			upstream = append(upstream, og)
		}
		for _, og := range upstream {
			Disconnect(og.owner, og.idx)
		}
	}

	// Disconnect downstream modules.
	for idx := range m.ogates {
		Disconnect(m, uint16(idx))
	}

	destroyAllTasks(m)

	ns.Remove(namespace.Module, m.name)

	dplog.Info("destroyed module: %s", m.name)
}

// FindModule looks up a module by name.
func FindModule(ns *namespace.Namespace, name string) (*Module, bool) {
	obj, ok := ns.Lookup(namespace.Module, name)
	if !ok {
		return nil, false
	}
	return obj.(*Module), true
}

// ListModules fills buf with up to len(buf) modules from ns, skipping the
// first offset modules encountered in namespace-iteration order, and
// returns the count written.
func ListModules(ns *namespace.Namespace, buf []*Module, offset int) int {
	it := ns.InitIterator(namespace.Module)
	defer it.Release()

	skipped := 0
	count := 0
	for {
		obj, ok := it.Next()
		if !ok {
			break
		}
		if skipped < offset {
			skipped++
			continue
		}
		if count >= len(buf) {
			break
		}
		buf[count] = obj.(*Module)
		count++
	}
	return count
}

// Deadend is the default sink hook: it accounts the batch to the worker's
// silent-drop counter and releases the packet references. Spec §4.3.
func Deadend(w *worker.Worker, b *batch.Batch) {
	w.Deadend(b)
}

// defaultName derives an unused name for a module of the given class:
// class.DefaultInstanceName (or a snake_case rendering of class.Name) with
// the lowest unused non-negative integer suffix.
func defaultName(ns *namespace.Namespace, class *mclass.Class) (string, error) {
	base := class.DefaultInstanceName
	if base == "" {
		base = camelToSnake(class.Name)
	}

	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if len(candidate) >= ModuleNameLen {
			return "", dperr.New(dperr.EINVAL, "generated module name %q exceeds MODULE_NAME_LEN", candidate)
		}
		if _, ok := FindModule(ns, candidate); !ok {
			return candidate, nil
		}
	}
}

// camelToSnake converts a class name like "MyIPChecksum" to "my_ip_checksum".
// It inserts '_' before an uppercase letter that follows a lowercase one
// (the literal BESS rule), and also before an uppercase letter that follows
// another uppercase letter when it is itself followed by a lowercase one —
// the acronym-boundary case ("IPChecksum" -> "ip_checksum", not
// "ipchecksum") that spec §8 scenario S3's own worked example requires.
func camelToSnake(s string) string {
	r := []rune(s)
	var b strings.Builder

	for i, c := range r {
		if i > 0 && unicode.IsUpper(c) {
			prevLower := unicode.IsLower(r[i-1])
			prevUpper := unicode.IsUpper(r[i-1])
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])

			if prevLower || (prevUpper && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(c))
	}

	return b.String()
}
