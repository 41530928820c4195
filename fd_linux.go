// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package stdcap

import "golang.org/x/sys/unix"

// plugFd atomically points fd at the same open file description as src.
// Dup3, as dup2 does not exist on the newer Linux ports (arm64, riscv64).
func plugFd(src, fd int) error { return unix.Dup3(src, fd, 0) }
