// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !microtbx_multicore

package microtbx

import "sync"

// cpuSRIrqEnabled is the CpuSR value that records "interrupts were
// enabled" at the time Disable was called, mirroring the original
// library's TBX_PORT_CPU_SR_IRQ_EN sentinel.
const cpuSRIrqEnabled CpuSR = 1

// critSectMutex simulates global interrupt masking on a hosted target: a
// process-wide mutex that every Disable/Restore pair locks and unlocks in
// perfect nesting, exactly like the original LINUX/WINDOWS ports.
//
// The original LINUX port additionally test-and-sets an atomic flag before
// locking, to let a caller already holding the section skip re-locking.
// That shortcut is sound on a single execution context (bare metal) but
// unsound across real OS threads: two goroutines racing into
// portDisable could both observe "already held" and neither would
// actually hold the mutex, breaking the linearizability spec §5
// requires of every critical-section-guarded mutation. This port always
// locks and always unlocks; nesting discipline is the caller's
// responsibility, per spec §4.3.
var critSectMutex sync.Mutex

// portDisable locks the simulated critical section and returns the
// captured prior state for portRestore to replay.
func portDisable() CpuSR {
	critSectMutex.Lock()
	return cpuSRIrqEnabled
}

// portRestore unlocks the simulated critical section when prev indicates
// the caller was the (only) owner.
func portRestore(prev CpuSR) {
	if prev == cpuSRIrqEnabled {
		critSectMutex.Unlock()
	}
}
