// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"bufio"
	"errors"
	"io"
)

// Stream is a duplex byte stream connected to the other side.
//
// Written data may be buffered until Flush is called. Close releases the
// underlying channel. A Stream is not safe for concurrent use by multiple
// readers or multiple writers.
type Stream interface {
	io.Reader
	io.Writer
	Flush() error
	Close() error
}

// bufferedStream adds read and write buffers to a byte oriented channel.
type bufferedStream struct {
	reader *bufio.Reader
	writer *bufio.Writer
	closer io.Closer
	op     string
}

func newBufferedStream(rwc io.ReadWriteCloser, op string) bufferedStream {
	return bufferedStream{
		reader: bufio.NewReader(rwc),
		writer: bufio.NewWriter(rwc),
		closer: rwc,
		op:     op,
	}
}

// Read implements [io.Reader].
func (s *bufferedStream) Read(p []byte) (int, error) {
	n, err := s.reader.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, &Error{Op: s.op + " read", Err: err}
	}

	return n, err //nolint:wrapcheck
}

// Write implements [io.Writer].
func (s *bufferedStream) Write(p []byte) (int, error) {
	n, err := s.writer.Write(p)
	if err != nil {
		return n, &Error{Op: s.op + " write", Err: err}
	}

	return n, nil
}

// Flush writes any buffered data to the underlying channel.
func (s *bufferedStream) Flush() error {
	err := s.writer.Flush()
	if err != nil {
		return &Error{Op: s.op + " flush", Err: err}
	}

	return nil
}

// Close flushes buffered data and closes the underlying channel.
func (s *bufferedStream) Close() error {
	flushErr := s.Flush()

	err := s.closer.Close()
	if err != nil {
		err = &Error{Op: s.op + " close", Err: err}
	}

	return errors.Join(flushErr, err)
}
