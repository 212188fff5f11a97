// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx

// Status mirrors the OK/ERROR return-code convention of the original
// MicroTBX library (spec §6). Most operations in this package prefer
// idiomatic Go error/bool returns; Status exists for call sites that want
// the literal library convention.
type Status int

const (
	// ERROR indicates an operation did not complete successfully.
	ERROR Status = 0
	// OK indicates an operation completed successfully.
	OK Status = 1
)

// CpuSR is a platform-sized integer capable of storing the "interrupts
// enabled" flag state captured by portDisable and consumed by
// portRestore.
type CpuSR uintptr

// noCopy is a sentinel used to prevent copying of synchronization
// primitives. go vet flags any struct embedding noCopy that gets copied
// by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
