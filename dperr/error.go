// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package dperr defines the structured, POSIX-flavored errors returned by
// the graph runtime's control operations (spec: "Control operations surface
// a structured error object containing code and a human-readable message").
package dperr

import "fmt"

// Code is one of the small set of conditions the graph runtime's control
// operations can fail with. The names are POSIX errno names, matching the
// -errno conventions of the BESS C implementation this runtime is modeled
// on; the numeric values are this package's own (1 to 4), not errno numbers.
type Code int

const (
	// EEXIST: a name (module, etc.) already exists in its namespace.
	EEXIST Code = iota + 1
	// EINVAL: a bad gate index, missing required class hook, or similar.
	EINVAL
	// EBUSY: an output gate is already connected.
	EBUSY
	// ENOMEM: a gate array, gate, or module allocation failed.
	ENOMEM
)

func (c Code) String() string {
	switch c {
	case EEXIST:
		return "EEXIST"
	case EINVAL:
		return "EINVAL"
	case EBUSY:
		return "EBUSY"
	case ENOMEM:
		return "ENOMEM"
	}
	return "EUNKNOWN"
}

// Error is the structured error object returned by control-plane operations.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Code, e.Message)
}

// New builds an *Error with a formatted message.
func New(code Code, format string, arg ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, arg...)}
}

// Is reports whether err is a *dperr.Error with the given code, so callers
// can branch on `errors.Is`-style checks without a type assertion.
func Is(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
