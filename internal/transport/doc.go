// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transport provides the channel between guest and host as plain
// duplex byte [Stream].
//
// There are three kinds of channels:
//   - [Device]: a character device like a serial console (/dev/ttyS0) or a
//     virtio port.
//   - [Socket]: a local socket, either a Unix domain socket as exposed by
//     QEMU character devices or a vsock connection.
//   - [Tunnel]: a remote console reached via a message based connection,
//     like a WebSocket. The tunnel adapter hides the message boundaries, so
//     it behaves exactly like the other byte streams.
//
// The kind is selected once from an [Address] by [Dialer.Open].
package transport
