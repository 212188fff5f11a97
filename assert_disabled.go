// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build microtbx_noassert

package microtbx

// AssertionHandler is invoked when Assert's condition is false. With the
// microtbx_noassert build tag, Assert never calls it; the type is kept
// so code written against either build compiles unmodified.
type AssertionHandler func(file string, line int)

// Assert is a no-op under the microtbx_noassert build tag, the Go
// equivalent of the original library's TBX_ASSERT macro expanding to
// nothing when TBX_ASSERTIONS_ENABLE is 0 (spec §4.2/§6).
func Assert(cond bool) {}

// SetAssertionHandler is a no-op under the microtbx_noassert build tag.
func SetAssertionHandler(h AssertionHandler) error { return nil }
