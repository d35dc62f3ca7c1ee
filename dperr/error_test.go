// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package dperr

import "testing"

func TestIs(t *testing.T) {
	err := New(EBUSY, "ogate %d already connected", 3)

	if !Is(err, EBUSY) {
		t.Fatal("expected EBUSY")
	}
	if Is(err, EINVAL) {
		t.Fatal("did not expect EINVAL")
	}

	var plain error = errPlain{}
	if Is(plain, EBUSY) {
		t.Fatal("plain error should never match")
	}
}

type errPlain struct{}

func (errPlain) Error() string { return "plain" }
