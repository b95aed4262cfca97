// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package frame

import "errors"

var (
	// ErrStreamClosed is returned if the stream ended before a complete frame
	// was read.
	ErrStreamClosed = errors.New("stream closed")

	// ErrMalformedLength is returned if the length field is not a 24 digit
	// decimal number.
	ErrMalformedLength = errors.New("malformed length field")

	// ErrLengthOverflow is returned if a length can not be represented by the
	// length field.
	ErrLengthOverflow = errors.New("length does not fit length field")

	// ErrPayloadTooLarge is returned if the length field announces a payload
	// larger than the reader accepts.
	ErrPayloadTooLarge = errors.New("payload too large")
)
