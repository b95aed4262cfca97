// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// KindDevice is a character device like a serial console.
	KindDevice Kind = "device"
	// KindSocket is a local Unix domain or vsock socket.
	KindSocket Kind = "socket"
	// KindTunnel is a remote console reached via WebSocket.
	KindTunnel Kind = "tunnel"
)

// Kind is the kind of channel an [Address] refers to.
type Kind string

const (
	// NetworkUnix is the network of Unix domain socket addresses.
	NetworkUnix = "unix"
	// NetworkVsock is the network of vsock addresses.
	NetworkVsock = "vsock"
)

// Address identifies the channel to open.
//
// Its text form is one of:
//
//	device:/dev/ttyS0
//	/dev/ttyS0                (shorthand for device addresses)
//	unix:/run/vm/serial.sock
//	vsock:3:1024              (context ID and port)
//	ws://host/path, wss://host/path
type Address struct {
	Kind Kind

	// Network is the socket network for [KindSocket].
	Network string

	// Path is the device path or Unix socket path.
	Path string

	// CID and Port are the vsock context ID and port.
	CID  uint32
	Port uint32

	// URL is the WebSocket URL for [KindTunnel].
	URL string
}

// ParseAddress parses an address from its text form.
func ParseAddress(s string) (Address, error) {
	var addr Address

	err := addr.UnmarshalText([]byte(s))

	return addr, err
}

// String implements [fmt.Stringer].
func (a Address) String() string {
	switch {
	case a.Kind == KindDevice:
		return "device:" + a.Path
	case a.Kind == KindSocket && a.Network == NetworkUnix:
		return "unix:" + a.Path
	case a.Kind == KindSocket && a.Network == NetworkVsock:
		return fmt.Sprintf("vsock:%d:%d", a.CID, a.Port)
	case a.Kind == KindTunnel:
		return a.URL
	default:
		return ""
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (a Address) MarshalText() ([]byte, error) {
	s := a.String()
	if s == "" {
		return nil, ErrInvalidAddress
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Address) UnmarshalText(text []byte) error {
	s := string(text)

	// Plain device paths may be given without prefix.
	if strings.HasPrefix(s, "/dev/") {
		s = "device:" + s
	}

	scheme, rest, found := strings.Cut(s, ":")
	if !found {
		return fmt.Errorf("%q: missing type prefix: %w", s, ErrInvalidAddress)
	}

	var (
		addr Address
		err  error
	)

	switch scheme {
	case "device":
		addr, err = pathAddress(KindDevice, "", rest)
	case "unix":
		addr, err = pathAddress(KindSocket, NetworkUnix, rest)
	case "vsock":
		addr, err = vsockAddress(rest)
	case "ws", "wss":
		addr, err = tunnelAddress(s)
	default:
		err = fmt.Errorf("unknown type %q", scheme)
	}

	if err != nil {
		return fmt.Errorf("%q: %w: %w", s, ErrInvalidAddress, err)
	}

	*a = addr

	return nil
}

func pathAddress(kind Kind, network, path string) (Address, error) {
	if path == "" {
		return Address{}, errors.New("empty path")
	}

	return Address{Kind: kind, Network: network, Path: path}, nil
}

func vsockAddress(s string) (Address, error) {
	cidStr, portStr, found := strings.Cut(s, ":")
	if !found {
		return Address{}, errors.New("expected <cid>:<port>")
	}

	cid, err := strconv.ParseUint(cidStr, 10, 32)
	if err != nil {
		return Address{}, fmt.Errorf("cid: %w", err)
	}

	port, err := strconv.ParseUint(portStr, 10, 32)
	if err != nil {
		return Address{}, fmt.Errorf("port: %w", err)
	}

	return Address{
		Kind:    KindSocket,
		Network: NetworkVsock,
		CID:     uint32(cid),
		Port:    uint32(port),
	}, nil
}

func tunnelAddress(s string) (Address, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Address{}, err //nolint:wrapcheck
	}

	if u.Host == "" {
		return Address{}, errors.New("missing host")
	}

	return Address{Kind: KindTunnel, URL: u.String()}, nil
}
