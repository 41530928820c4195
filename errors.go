// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package stdcap

import "errors"

// ErrPoisoned marks a stream whose previous capture session panicked
// while holding the lock. Acquire keeps returning it (wrapped, together
// with a usable handle) for the rest of the process lifetime.
var ErrPoisoned = errors.New("lock poisoned by a previous holder")

var errInvalidUTF8 = errors.New("captured bytes are not valid UTF-8")

// FlushError reports that the stream's shared buffer could not be
// emptied to its current destination.
//
// AfterCallback distinguishes the two cases of CaptureInto: false means
// the pre-swap flush failed and nothing was changed; true means the
// post-callback flush failed while the capture target was still
// installed — the swap-back was not attempted and the stream is left
// pointing at the target.
type FlushError struct {
	Err           error
	Stream        StreamID
	AfterCallback bool
}

func (e *FlushError) Error() string {
	when := "before"
	if e.AfterCallback {
		when = "after"
	}
	return "stdcap: flush " + e.Stream.String() + " " + when + " callback: " + e.Err.Error()
}
func (e *FlushError) Unwrap() error { return e.Err }

// SwapError reports a failed descriptor exchange. The stream's output
// target is of unknown validity afterwards; treat the stream as
// unreliable for the rest of the process.
type SwapError struct {
	Err    error
	Op     string
	Stream StreamID
}

func (e *SwapError) Error() string {
	return "stdcap: " + e.Op + " " + e.Stream.String() + ": " + e.Err.Error()
}
func (e *SwapError) Unwrap() error { return e.Err }

// DecodeError reports that captured bytes could not be decoded to text.
type DecodeError struct {
	Err    error
	Stream StreamID
}

func (e *DecodeError) Error() string {
	return "stdcap: decode " + e.Stream.String() + " capture: " + e.Err.Error()
}
func (e *DecodeError) Unwrap() error { return e.Err }
