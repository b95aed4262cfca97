// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package transport

import "golang.org/x/sys/unix"

// makeRaw is only supported on Linux. Devices are used as they are
// configured.
func makeRaw(_ int) error {
	return unix.ENOTTY
}
