// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package frame

import (
	"fmt"
	"io"
	"math/big"
)

// Writer is a stream frames are written to.
type Writer interface {
	io.Writer
	Flush() error
}

// Encode returns the complete frame for the given payload.
func Encode(payload []byte) ([]byte, error) {
	length, err := FormatLength(big.NewInt(int64(len(payload))))
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(Marker)+len(length)+len(payload))
	frame = append(frame, Marker...)
	frame = append(frame, length...)
	frame = append(frame, payload...)

	return frame, nil
}

// Write writes the frame for the given payload in a single write and flushes
// the writer afterwards, so no partial frame is left in any buffer.
func Write(w Writer, payload []byte) error {
	frame, err := Encode(payload)
	if err != nil {
		return err
	}

	_, err = w.Write(frame)
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}

	return nil
}
