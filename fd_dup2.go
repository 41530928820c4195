// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

//go:build unix && !linux

package stdcap

import "golang.org/x/sys/unix"

// plugFd atomically points fd at the same open file description as src.
func plugFd(src, fd int) error { return unix.Dup2(src, fd) }
