// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package stdcap

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/tgulacsi/stdcap/bufpool"
)

// Capture runs f with the stream redirected into a fresh pipe and
// returns the read end. The write end is closed on the swap-back, so
// reading the returned file to EOF terminates instead of blocking.
//
// The pipe is drained only after f returns: output larger than the OS
// pipe buffer will stall f. Use CaptureTo for unbounded output.
func (ls *LentStream) Capture(f func()) (*os.File, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	if err = ls.CaptureInto(w, f); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// CaptureString captures f's output and returns it as a string,
// failing with a *DecodeError if it is not valid UTF-8.
func (ls *LentStream) CaptureString(f func()) (string, error) {
	return ls.CaptureText(nil, f)
}

// CaptureText captures f's output and decodes it from enc to UTF-8.
// A nil enc means the output already is UTF-8 and is only validated.
// Useful for C libraries that print in the locale's legacy charset.
func (ls *LentStream) CaptureText(enc encoding.Encoding, f func()) (string, error) {
	r, err := ls.Capture(f)
	if err != nil {
		return "", err
	}
	defer r.Close()
	id := ls.stream().id

	buf := bufpool.Get()
	defer bufpool.Put(buf)
	if enc == nil || enc == encoding.Replacement {
		if _, err = io.Copy(buf, r); err != nil {
			return "", err
		}
		if !utf8.Valid(buf.Bytes()) {
			return "", &DecodeError{Stream: id, Err: errInvalidUTF8}
		}
		return buf.String(), nil
	}
	dec := transform.NewReader(r,
		transform.Chain(enc.NewDecoder(), encoding.Replacement.NewEncoder()))
	if _, err = io.Copy(buf, dec); err != nil {
		return "", &DecodeError{Stream: id, Err: err}
	}
	return buf.String(), nil
}

// CaptureTo streams f's output into w while f is still running, so the
// callback can produce more than an OS pipe buffers without stalling.
// It reports the number of bytes copied.
func (ls *LentStream) CaptureTo(w io.Writer, f func()) (int64, error) {
	r, pw, err := os.Pipe()
	if err != nil {
		return 0, err
	}
	var n int64
	var grp errgroup.Group
	grp.Go(func() error {
		var err error
		n, err = io.Copy(w, r)
		r.Close()
		return err
	})

	capErr := ls.CaptureInto(pw, f)
	var fErr *FlushError
	if errors.As(capErr, &fErr) && fErr.AfterCallback {
		// The stream still points at the pipe and its write end is
		// still open, so the drain can never see EOF; abandon it.
		return 0, capErr
	}
	if err = grp.Wait(); err != nil && capErr == nil {
		capErr = err
	}
	return n, capErr
}
