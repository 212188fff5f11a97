// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build microtbx_multicore

package microtbx

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

// cpuSRIrqEnabled is the CpuSR value that records "interrupts were
// enabled" at the time Disable was called.
const cpuSRIrqEnabled CpuSR = 1

// spinLocked is the hardware-style spin lock claimed by whichever
// goroutine is currently in the critical section, modeled after the
// original library's RP2040 port, which claims a hardware spin lock
// (hardware/sync spin_lock_t) instead of a plain mutex.
//
// Go has no stable notion of "the current CPU core" to key an ownership
// flag on the way the RP2040 port keys coreHasLock[core_num()] —
// goroutines migrate between OS threads freely, so this port does not
// attempt the RP2040 port's "skip the claim if this core already holds
// it" shortcut. Every call claims the lock unconditionally and every
// matching portRestore releases it; nesting discipline is the caller's
// responsibility, per spec §4.3.
var spinLocked atomic.Bool

// portDisable claims the spin lock, spinning via spin.Wait's adaptive
// backoff while it is contested, and returns the captured prior state.
func portDisable() CpuSR {
	var sw spin.Wait
	for !spinLocked.CompareAndSwap(false, true) {
		sw.Once()
	}
	return cpuSRIrqEnabled
}

// portRestore releases the spin lock claimed by portDisable, yielding the
// processor once so a spinning waiter on another goroutine is scheduled
// promptly.
func portRestore(prev CpuSR) {
	if prev == cpuSRIrqEnabled {
		spinLocked.Store(false)
		spin.Yield()
	}
}
