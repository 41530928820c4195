// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package zlog holds the process-wide logger of stdcap.
//
// The default logger is a no-op: a library that redirects stderr must
// never write to stderr uninvited. stdcap only logs on cleanup paths
// where there is no caller left to return an error to (restoring a
// stream while a panic unwinds).
package zlog

import (
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	logger.Store(&l)
}

// Log returns the current process-wide logger.
func Log() *zerolog.Logger { return logger.Load() }

// SetLogger swaps the process-wide logger.
func SetLogger(l zerolog.Logger) { logger.Store(&l) }

// SetOutput points the process-wide logger at w.
//
// Beware of handing it a writer that itself goes through a captured
// stream: during a capture the log lines would land in the capture.
// Hand it a file, or the saved descriptor side of the stream.
func SetOutput(w io.Writer) {
	if w == nil {
		l := zerolog.Nop()
		logger.Store(&l)
		return
	}
	l := zerolog.New(w).With().Timestamp().Logger()
	logger.Store(&l)
}
