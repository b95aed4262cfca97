// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"errors"
	"io"
)

const (
	// FrameUnknown is any frame kind the adapter does not know.
	FrameUnknown FrameKind = iota
	// FrameBinary carries stream data.
	FrameBinary
	// FrameText carries out of band text. It is not part of the stream.
	FrameText
	// FrameClose announces the end of the connection.
	FrameClose
)

// FrameKind is the kind of a [Frame] on a [MessageConn].
type FrameKind int

// Close status codes as defined by RFC 6455 section 7.4.1 that end a
// [Tunnel] stream cleanly. Any other code is considered an error.
const (
	CloseNormal        = 1000
	CloseGoingAway     = 1001
	CloseNoStatusCode  = 1005
	CloseProtocolError = 1002
	CloseInternalError = 1011
)

// CloseStatus is the status sent with a close frame.
type CloseStatus struct {
	Code   int
	Reason string
}

// Frame is a single message on a [MessageConn].
type Frame struct {
	Kind FrameKind
	Data []byte

	// Close is the status of a [FrameClose]. It is nil if the close frame
	// did not carry a status.
	Close *CloseStatus
}

// MessageConn is a full-duplex message based connection, like a WebSocket.
type MessageConn interface {
	// Receive returns the next frame. It returns [io.EOF] if the connection
	// ended without any further frame.
	Receive() (Frame, error)

	// Send sends the given frame. The implementation must not retain the
	// frame's data after it returns.
	Send(frame Frame) error

	// Flush sends any buffered frames.
	Flush() error

	// Close closes the connection.
	Close() error
}

// Tunnel is a [Stream] on top of a [MessageConn].
//
// Binary frames form the byte stream. Their boundaries are not visible to
// the reader: a read returns data of at most one frame and keeps the rest
// for the next read. Text frames are discarded. A close frame ends the
// stream with [io.EOF] if the close is normal, or an [Error] wrapping a
// [CloseError] otherwise.
//
// Each write is sent as exactly one binary frame.
type Tunnel struct {
	conn MessageConn

	// residual holds data of the current binary frame not read yet.
	residual []byte

	// done is the terminal read result once the stream ended.
	done error
}

var _ Stream = (*Tunnel)(nil)

// NewTunnel creates a new [Tunnel] on the given connection.
func NewTunnel(conn MessageConn) *Tunnel {
	return &Tunnel{conn: conn}
}

// Read implements [io.Reader].
//
// It returns 0 and nil if a frame of unknown kind was received, which
// callers should treat as "try again".
func (t *Tunnel) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(t.residual) == 0 {
		if t.done != nil {
			return 0, t.done
		}

		frame, err := t.conn.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				t.done = io.EOF
				continue
			}

			return 0, &Error{Op: "tunnel receive", Err: err}
		}

		switch frame.Kind {
		case FrameBinary:
			// Zero length frames leave residual empty and the next frame
			// is received right away.
			t.residual = frame.Data
		case FrameText:
			// Not part of the stream.
		case FrameClose:
			t.done = closeResult(frame.Close)
		default:
			return 0, nil
		}
	}

	n := copy(p, t.residual)
	t.residual = t.residual[n:]

	return n, nil
}

// closeResult translates the status of a close frame into the read result.
func closeResult(status *CloseStatus) error {
	if status == nil {
		return io.EOF
	}

	switch status.Code {
	case CloseNormal, CloseGoingAway, CloseNoStatusCode:
		return io.EOF
	default:
		return &Error{
			Op:  "tunnel receive",
			Err: &CloseError{Code: status.Code, Reason: status.Reason},
		}
	}
}

// Write implements [io.Writer]. The data is sent as a single binary frame.
func (t *Tunnel) Write(p []byte) (int, error) {
	err := t.conn.Send(Frame{Kind: FrameBinary, Data: p})
	if err != nil {
		return 0, &Error{Op: "tunnel send", Err: err}
	}

	return len(p), nil
}

// Flush flushes the underlying connection.
func (t *Tunnel) Flush() error {
	err := t.conn.Flush()
	if err != nil {
		return &Error{Op: "tunnel flush", Err: err}
	}

	return nil
}

// Close closes the underlying connection.
func (t *Tunnel) Close() error {
	err := t.conn.Close()
	if err != nil {
		return &Error{Op: "tunnel close", Err: err}
	}

	return nil
}
