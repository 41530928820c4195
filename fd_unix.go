// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package stdcap

import "golang.org/x/sys/unix"

// dupFd clones fd and marks the clone close-on-exec, so the saved
// descriptor of a capture session cannot leak into child processes
// started by the callback.
func dupFd(fd int) (int, error) {
	clone, err := unix.Dup(fd)
	if err != nil {
		return 0, err
	}
	flags, err := unix.FcntlInt(uintptr(clone), unix.F_GETFD, 0)
	if err == nil {
		_, err = unix.FcntlInt(uintptr(clone), unix.F_SETFD, flags|unix.FD_CLOEXEC)
	}
	if err != nil {
		unix.Close(clone)
		return 0, err
	}
	return clone, nil
}

func closeFd(fd int) error { return unix.Close(fd) }
