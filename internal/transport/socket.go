// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/mdlayher/vsock"
)

// Socket is a [Stream] on a local socket connection.
type Socket struct {
	bufferedStream

	conn net.Conn
}

var _ Stream = (*Socket)(nil)

// NewSocket creates a new [Socket] for the given connection.
func NewSocket(conn net.Conn) *Socket {
	return &Socket{
		bufferedStream: newBufferedStream(conn, "socket"),
		conn:           conn,
	}
}

// DialSocket connects to the given socket address.
//
// The address must be of [KindSocket]. Supported networks are [NetworkUnix]
// and [NetworkVsock].
func DialSocket(ctx context.Context, addr Address) (*Socket, error) {
	var (
		conn net.Conn
		err  error
	)

	switch addr.Network {
	case NetworkUnix:
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, NetworkUnix, addr.Path)
	case NetworkVsock:
		conn, err = vsock.Dial(addr.CID, addr.Port, nil)
	default:
		err = fmt.Errorf("network %q: %w", addr.Network, ErrInvalidAddress)
	}

	if err != nil {
		return nil, &Error{Op: "dial socket", Err: err}
	}

	return NewSocket(conn), nil
}

// RemoteAddr returns the address of the other side.
func (s *Socket) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}
