// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Device is a [Stream] on a character device, like a serial console or a
// virtio port.
type Device struct {
	bufferedStream

	file *os.File
}

var _ Stream = (*Device)(nil)

// OpenDevice opens the device at the given path for reading and writing.
//
// If the device is a terminal, it is switched into raw mode, so no bytes are
// altered or swallowed by the line discipline.
func OpenDevice(path string) (*Device, error) {
	file, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, &Error{Op: "open device", Err: err}
	}

	err = configure(file)

	switch {
	case err == nil:
		slog.Debug("Configured terminal", slog.String("path", path))
	case errors.Is(err, unix.ENOTTY):
		// Virtio ports and FIFOs are not terminals and need no setup.
	default:
		_ = file.Close()
		return nil, &Error{Op: "open device", Err: fmt.Errorf("%s: %w", path, err)}
	}

	return &Device{
		bufferedStream: newBufferedStream(file, "device"),
		file:           file,
	}, nil
}

// configure puts the device into raw mode. It uses the raw connection, as
// [os.File.Fd] would switch the file into blocking mode and pending reads
// could no longer be interrupted by closing the file.
func configure(file *os.File) error {
	rawConn, err := file.SyscallConn()
	if err != nil {
		return fmt.Errorf("raw conn: %w", err)
	}

	var rawErr error

	err = rawConn.Control(func(fd uintptr) {
		rawErr = makeRaw(int(fd))
	})
	if err != nil {
		return fmt.Errorf("control: %w", err)
	}

	return rawErr
}

// Name returns the path of the device.
func (d *Device) Name() string {
	return d.file.Name()
}
