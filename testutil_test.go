// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/feaser/microtbx"
)

// TestMain installs an AssertionHandler that panics instead of the
// package default (print-then-block-forever) before any test runs.
// spec.md §7.1 leaves the handler pluggable precisely so an embedder can
// replace the halt-forever default with something recoverable; this test
// suite is that embedder, since a blocked goroutine would otherwise hang
// the whole test binary the moment any precondition test fires.
func TestMain(m *testing.M) {
	_ = microtbx.SetAssertionHandler(func(file string, line int) {
		panic(fmt.Sprintf("microtbx: assertion failed at %s:%d", file, line))
	})
	os.Exit(m.Run())
}
