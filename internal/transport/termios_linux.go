// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// baudRate used for serial consoles. It matches the QEMU default.
const baudRate = unix.B115200

// makeRaw puts the terminal behind the given file descriptor into raw mode
// with 8 data bits at [baudRate].
//
// Returns [unix.ENOTTY] if the file descriptor is not a terminal.
func makeRaw(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}

	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG |
		unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB | unix.CBAUD
	termios.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	err = unix.IoctlSetTermios(fd, unix.TCSETS, termios)
	if err != nil {
		return fmt.Errorf("set termios: %w", err)
	}

	return nil
}
