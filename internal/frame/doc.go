// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package frame implements the self synchronizing framing used on the
// console between guest and host.
//
// A frame consists of the [Marker], a fixed width decimal length field and
// the payload:
//
//	[ Marker (41 bytes) | length (24 ASCII digits) | payload (length bytes) ]
//
// The text based length field keeps the console readable when it is viewed
// raw. The [Reader] skips over any bytes in front of the marker, like
// firmware or boot loader output, so the stream does not need to be frame
// aligned when it is read.
package frame
