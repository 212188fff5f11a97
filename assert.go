// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !microtbx_noassert

package microtbx

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
)

// AssertionHandler is invoked when Assert's condition is false. It
// receives the call site's file and line, mirroring the original
// library's tTbxAssertHandler(file, line) signature.
type AssertionHandler func(file string, line int)

// handler holds the currently installed AssertionHandler. It defaults to
// defaultAssertionHandler, which prints the call site and then blocks
// forever, matching the original library's "infinite loop" default.
var handler atomic.Pointer[AssertionHandler]

func init() {
	var h AssertionHandler = defaultAssertionHandler
	handler.Store(&h)
}

// Assert evaluates cond and, if false, invokes the installed
// AssertionHandler with the file and line of the caller. It is the sole
// surface for reporting precondition violations (spec §7.1); resource
// exhaustion and benign lookup misses must never call Assert.
func Assert(cond bool) {
	if cond {
		return
	}
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	h := handler.Load()
	(*h)(file, line)
}

// SetAssertionHandler installs a user-supplied AssertionHandler. Passing
// nil is itself a precondition violation and is reported through the
// currently installed handler before SetAssertionHandler returns an
// error, mirroring the original library's self-asserting setter.
func SetAssertionHandler(h AssertionHandler) error {
	Assert(h != nil)
	if h == nil {
		return fmt.Errorf("microtbx: assertion handler must not be nil")
	}
	handler.Store(&h)
	return nil
}

// defaultAssertionHandler prints the assertion's call site to stderr and
// then blocks forever, exactly like the original library's default
// TbxAssertTrigger implementation. Halting rather than panicking keeps
// the contract identical across builds: a violated assertion never lets
// the triggering goroutine continue past this call.
func defaultAssertionHandler(file string, line int) {
	fmt.Fprintf(os.Stderr, "microtbx: assertion failed at %s:%d\n", file, line)
	select {}
}
