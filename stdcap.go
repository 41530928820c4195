// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package stdcap captures everything written to the process' standard
// output or standard error while a callback runs, including writes from
// code that knows nothing about the capture (C libraries, the runtime's
// panic output, anything that writes to file descriptor 1 or 2).
//
// Capture sessions on the same stream are mutually exclusive, writers
// going through Writer are serialized against sessions, and the stream's
// original destination is restored on every exit path, panicking
// callbacks included.
package stdcap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// StreamID names one of the two process-wide output streams.
type StreamID uint8

const (
	Stdout = StreamID(iota)
	Stderr
)

func (id StreamID) String() string {
	switch id {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	}
	return fmt.Sprintf("stream(%d)", uint8(id))
}

// stream is the per-identity record: the process-wide file, its
// descriptor, the shared buffer every managed writer goes through,
// and the two locks.
//
// capmu serializes capture sessions against each other; wmu is the
// writer-serialization lock that additionally excludes ordinary
// writers for the whole swap-run-swap window. Both are needed: capmu
// alone would not stop a Writer caller from being mid-write while the
// descriptor is exchanged.
type stream struct {
	id   StreamID
	file *os.File
	fd   int
	bw   *bufio.Writer

	capmu    sync.Mutex
	wmu      sync.Mutex
	poisoned atomic.Bool
}

var streams = func() [2]*stream {
	tbl := [2]*stream{
		{id: Stdout, file: os.Stdout},
		{id: Stderr, file: os.Stderr},
	}
	for _, s := range tbl {
		s.fd = int(s.file.Fd())
		s.bw = bufio.NewWriter(s.file)
	}
	return tbl
}()

func lookup(id StreamID) (*stream, error) {
	if int(id) >= len(streams) {
		return nil, fmt.Errorf("stdcap: unknown stream %s", id)
	}
	return streams[id], nil
}

// LentStream is the capability returned by Acquire: while it lives, its
// holder is the only capture session and the only managed writer on the
// stream. It is an io.Writer going through the stream's shared buffer,
// so a capturing callback can write to the stream it captures without
// deadlocking on the writer lock (the handle is the lock).
//
// A LentStream belongs to the goroutine that acquired it; it must not
// be shared, and must not be used after Release.
type LentStream struct {
	s *stream
}

// Acquire blocks until the capture lock of the stream is free, takes it,
// then takes the stream's writer-serialization lock, and returns the
// handle proving exclusive access.
//
// If a previous holder's callback panicked, Acquire returns the handle
// together with ErrPoisoned: stream state was restored on the unwind
// path but is no longer vouched for. The caller may deliberately go on
// using the returned handle; the poison mark is never cleared.
func Acquire(id StreamID) (*LentStream, error) {
	s, err := lookup(id)
	if err != nil {
		return nil, err
	}
	s.capmu.Lock()
	s.wmu.Lock()
	ls := &LentStream{s: s}
	if s.poisoned.Load() {
		return ls, fmt.Errorf("stdcap: acquire %s: %w", id, ErrPoisoned)
	}
	return ls, nil
}

// Release gives the stream back: writer lock first, then the capture
// lock. It never fails, and subsequent calls are no-ops.
func (ls *LentStream) Release() {
	s := ls.s
	if s == nil {
		return
	}
	ls.s = nil
	s.wmu.Unlock()
	s.capmu.Unlock()
}

func (ls *LentStream) stream() *stream {
	if ls.s == nil {
		panic("stdcap: LentStream used after Release")
	}
	return ls.s
}

// ID reports which stream the handle lends.
func (ls *LentStream) ID() StreamID { return ls.stream().id }

// Write writes through the stream's shared buffer and flushes, so the
// bytes reach whatever the stream's descriptor currently points at
// before Write returns. Flushing through is what keeps handle writes in
// program order with writes that hit the descriptor directly
// (os.Stdout, C code) inside one capture.
func (ls *LentStream) Write(p []byte) (int, error) {
	s := ls.stream()
	n, err := s.bw.Write(p)
	if err != nil {
		return n, err
	}
	if err = s.bw.Flush(); err != nil {
		return n, err
	}
	return n, nil
}

// Flush empties the shared buffer to the stream's current destination.
func (ls *LentStream) Flush() error {
	s := ls.stream()
	if err := s.bw.Flush(); err != nil {
		return &FlushError{Stream: s.id, Err: err}
	}
	return nil
}

// Writer returns the ordinary managed writer for the stream: each Write
// takes the writer-serialization lock, goes through the shared buffer
// and flushes. A Write started outside a capture session blocks until
// the session is over, so its bytes always reach the stream's real
// destination, never a capture target.
func Writer(id StreamID) io.Writer {
	s, err := lookup(id)
	if err != nil {
		panic(err)
	}
	return lockedWriter{s: s}
}

type lockedWriter struct{ s *stream }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.s.wmu.Lock()
	defer w.s.wmu.Unlock()
	n, err := w.s.bw.Write(p)
	if err != nil {
		return n, err
	}
	if err = w.s.bw.Flush(); err != nil {
		return n, err
	}
	return n, nil
}
