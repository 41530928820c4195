// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package stdcap

import (
	"os"

	"github.com/tgulacsi/stdcap/zlog"
)

// CaptureInto points the stream's descriptor at target, runs f, and
// points it back. Every write that reaches the descriptor while f runs
// — through the handle, through os.Stdout/os.Stderr, or from C code —
// lands in target instead of the stream's real destination.
//
// CaptureInto takes ownership of target: after the swap-back it is
// closed, which is what lets a pipe reader on the other end see EOF.
// The shared buffer is flushed on both sides of f, so bytes buffered
// before the call stay with the old destination and everything f wrote
// is visible in target before CaptureInto returns.
//
// If f panics, the flush and the swap-back still happen during
// unwinding, the stream is marked poisoned for later Acquire calls,
// and the panic continues. Failures on that unwind path have no caller
// left to report to; they go to the zlog logger.
//
// A *FlushError with AfterCallback set means the post-callback flush
// failed: the swap-back was not attempted and the stream still points
// at target. A *SwapError means the descriptor exchange itself failed
// and the stream's destination is of unknown validity.
func (ls *LentStream) CaptureInto(target *os.File, f func()) error {
	s := ls.stream()

	// Bytes buffered before the swap belong to the old destination.
	if err := s.bw.Flush(); err != nil {
		target.Close()
		return &FlushError{Stream: s.id, Err: err}
	}

	saved, err := dupFd(s.fd)
	if err != nil {
		target.Close()
		return &SwapError{Stream: s.id, Op: "dup", Err: err}
	}
	if err = plugFd(int(target.Fd()), s.fd); err != nil {
		closeFd(saved)
		target.Close()
		return &SwapError{Stream: s.id, Op: "install", Err: err}
	}

	// The target is installed; from here on the swap-back must run on
	// every exit path.
	restored := false
	restore := func() error {
		if restored {
			return nil
		}
		restored = true
		err := plugFd(saved, s.fd)
		if cErr := closeFd(saved); err == nil {
			err = cErr
		}
		if cErr := target.Close(); err == nil {
			err = cErr
		}
		return err
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.poisoned.Store(true)
		if err := s.bw.Flush(); err != nil {
			zlog.Log().Error().Err(err).Stringer("stream", s.id).
				Msg("flush while unwinding")
		}
		if err := restore(); err != nil {
			zlog.Log().Error().Err(err).Stringer("stream", s.id).
				Msg("restore while unwinding")
		}
		panic(r)
	}()

	f()

	// Flush what f buffered, to the target: the capture must be
	// complete before the swap-back.
	if err = s.bw.Flush(); err != nil {
		return &FlushError{Stream: s.id, AfterCallback: true, Err: err}
	}
	if err = restore(); err != nil {
		return &SwapError{Stream: s.id, Op: "restore", Err: err}
	}
	return nil
}
