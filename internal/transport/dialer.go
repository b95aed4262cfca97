// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// TunnelTokenEnv is the environment variable the tunnel bearer token is read
// from by the binaries.
const TunnelTokenEnv = "SOLSTICE_TUNNEL_TOKEN"

// Dialer opens a [Stream] for an [Address].
type Dialer struct {
	// TunnelHeader is sent with the handshake request of tunnel addresses.
	TunnelHeader http.Header
}

// BearerHeader returns a header carrying the given token as bearer
// authorization. It returns nil for an empty token.
func BearerHeader(token string) http.Header {
	if token == "" {
		return nil
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	return header
}

// Open opens the channel the given address refers to.
func (d *Dialer) Open(ctx context.Context, addr Address) (Stream, error) {
	slog.Debug("Open channel", slog.String("address", addr.String()))

	var (
		stream Stream
		err    error
	)

	// Assign only on success, so a failure never yields a non-nil Stream
	// holding a nil pointer.
	switch addr.Kind {
	case KindDevice:
		var device *Device
		if device, err = OpenDevice(addr.Path); err == nil {
			stream = device
		}
	case KindSocket:
		var socket *Socket
		if socket, err = DialSocket(ctx, addr); err == nil {
			stream = socket
		}
	case KindTunnel:
		var tunnel *Tunnel
		if tunnel, err = DialTunnel(ctx, addr.URL, d.TunnelHeader); err == nil {
			stream = tunnel
		}
	default:
		err = fmt.Errorf("kind %q: %w", addr.Kind, ErrInvalidAddress)
	}

	if err != nil {
		return nil, err
	}

	return stream, nil
}

// Open opens the channel the given address refers to with a zero [Dialer].
func Open(ctx context.Context, addr Address) (Stream, error) {
	var dialer Dialer
	return dialer.Open(ctx, addr)
}
