// Copyright (c) 2024 by Feaser. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package microtbx

import "sync/atomic"

// critSectState holds the single saved CpuSR slot shared by every caller
// of EnterCriticalSection/ExitCriticalSection. It is not a stack: the
// critical section primitive is non-reentrant at the slot level by
// design (spec §4.3). A caller that needs nested critical sections must
// save the CpuSR itself rather than relying on this shared slot; every
// mutator in this package follows the "acquire and release exactly once"
// discipline instead.
var (
	critSectState atomic.Uint64
	critSectHeld  atomic.Bool
)

// EnterCriticalSection obtains exclusive access to shared library state.
// It calls the platform Port's Disable and stores the returned state in
// the single process-wide slot for the matching ExitCriticalSection to
// consume.
func EnterCriticalSection() {
	prev := portDisable()
	critSectState.Store(uint64(prev))
	critSectHeld.Store(true)
}

// ExitCriticalSection releases exclusive access previously obtained with
// EnterCriticalSection. Calling it without a matching prior
// EnterCriticalSection is a programmer error and is reported via Assert.
func ExitCriticalSection() {
	Assert(critSectHeld.Load())
	if !critSectHeld.Load() {
		return
	}
	prev := CpuSR(critSectState.Load())
	critSectHeld.Store(false)
	portRestore(prev)
}
