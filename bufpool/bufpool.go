// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package bufpool pools the bytes.Buffers the capture drains fill,
// so repeated captures (the usual pattern in tests and collectors)
// do not reallocate.
package bufpool

import (
	"bytes"
	"sync"
)

const DefaultSize = 8192

var Default = New(DefaultSize)

// New returns a pool handing out buffers with the given starting
// capacity (DefaultSize when 0).
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	return &Pool{pool: sync.Pool{New: func() any { return bytes.NewBuffer(make([]byte, 0, size)) }}}
}

// Get returns an empty buffer from the Default pool.
func Get() *bytes.Buffer { return Default.Get() }

// Put returns buf to the Default pool.
func Put(buf *bytes.Buffer) { Default.Put(buf) }

type Pool struct {
	pool sync.Pool
}

func (p *Pool) Get() *bytes.Buffer {
	buf := p.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (p *Pool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > 1<<20 {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}
