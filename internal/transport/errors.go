// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned if an address can not be parsed.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownFrameKind is returned if a frame of unknown kind is sent.
	ErrUnknownFrameKind = errors.New("unknown frame kind")
)

// Error wraps any error of the underlying channel.
type Error struct {
	Op  string
	Err error
}

// Error implements the [error] interface.
func (e *Error) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Is implements the [errors.Is] interface.
func (*Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.Err
}

// CloseError is returned by a [Tunnel] read if the remote side closed the
// connection with an error status.
type CloseError struct {
	Code   int
	Reason string
}

// Error implements the [error] interface.
func (e *CloseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("closed with code %d", e.Code)
	}

	return fmt.Sprintf("closed with code %d: %s", e.Code, e.Reason)
}

// Is implements the [errors.Is] interface.
func (*CloseError) Is(other error) bool {
	_, ok := other.(*CloseError)
	return ok
}
