// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package frame

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxPayloadSize is the payload size limit used if
// [Reader.MaxPayloadSize] is not set.
const DefaultMaxPayloadSize = 256 << 20

// Reader reads frames from a stream that is not necessarily frame aligned.
//
// Everything in front of the [Marker] is skipped. If Echo is set, all bytes
// read while scanning for the marker, including the marker itself, are
// forwarded to it. This keeps console output of the other side, like boot
// messages, visible.
type Reader struct {
	// Source is the stream to read from.
	Source io.Reader

	// Echo receives the skipped bytes. It is flushed line by line. May be
	// nil.
	Echo io.Writer

	// MaxPayloadSize limits the accepted payload size. If not set,
	// [DefaultMaxPayloadSize] is used.
	MaxPayloadSize int

	consumed int64
}

// NewReader creates a new [Reader] for the given source and echo writer.
func NewReader(source io.Reader, echo io.Writer) *Reader {
	return &Reader{
		Source: source,
		Echo:   echo,
	}
}

// Consumed returns the number of bytes read from the source so far.
func (r *Reader) Consumed() int64 {
	return r.consumed
}

// Next reads the next frame and returns its payload.
//
// It returns [ErrStreamClosed] if the source ends before a complete frame
// was read. Errors of the source other than transient ones are returned
// wrapped.
func (r *Reader) Next() ([]byte, error) {
	err := r.sync()
	if err != nil {
		return nil, err
	}

	field := make([]byte, LengthFieldSize)

	err = r.readFull(field)
	if err != nil {
		return nil, fmt.Errorf("length: %w", err)
	}

	length, err := ParseLength(field)
	if err != nil {
		return nil, err
	}

	if !length.IsInt64() || length.Int64() > int64(r.maxPayloadSize()) {
		return nil, fmt.Errorf("%s bytes: %w: %w",
			length, ErrPayloadTooLarge, ErrMalformedLength)
	}

	payload := make([]byte, length.Int64())

	err = r.readFull(payload)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	return payload, nil
}

func (r *Reader) maxPayloadSize() int {
	if r.MaxPayloadSize > 0 {
		return r.MaxPayloadSize
	}

	return DefaultMaxPayloadSize
}

// sync consumes the source byte by byte until the [Marker] has been read.
func (r *Reader) sync() error {
	echo := bufio.NewWriter(r.echo())
	win := newWindow()
	buf := make([]byte, 1)

	for {
		n, err := r.Source.Read(buf)
		if n == 1 {
			r.consumed++

			// Echo errors must not break the protocol stream.
			_ = echo.WriteByte(buf[0])
			if buf[0] == '\r' || buf[0] == '\n' {
				_ = echo.Flush()
			}

			if win.push(buf[0]) {
				break
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			_ = echo.Flush()
			return fmt.Errorf("marker: %w", ErrStreamClosed)
		case isTransient(err):
		default:
			_ = echo.Flush()
			return fmt.Errorf("marker: %w", err)
		}
	}

	_ = echo.WriteByte('\n')
	_ = echo.Flush()

	return nil
}

func (r *Reader) echo() io.Writer {
	if r.Echo == nil {
		return io.Discard
	}

	return r.Echo
}

// readFull reads exactly len(buf) bytes. Short reads and transient errors
// are retried.
func (r *Reader) readFull(buf []byte) error {
	var read int

	for read < len(buf) {
		n, err := r.Source.Read(buf[read:])
		read += n
		r.consumed += int64(n)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if read == len(buf) {
				return nil
			}

			return fmt.Errorf("%d of %d bytes: %w", read, len(buf), ErrStreamClosed)
		case isTransient(err):
		default:
			return err
		}
	}

	return nil
}

// isTransient returns true for read errors that indicate no data is
// available yet, like read timeouts or interrupted system calls.
func isTransient(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded) || isTransientErrno(err)
}
