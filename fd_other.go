// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package stdcap

import (
	"errors"
	"fmt"
	"runtime"
)

var errNoDup = fmt.Errorf("descriptor exchange on %s: %w", runtime.GOOS, errors.ErrUnsupported)

func dupFd(fd int) (int, error) { return 0, errNoDup }
func plugFd(src, fd int) error { return errNoDup }
func closeFd(fd int) error { return errNoDup }
