// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package frame

import "bytes"

// Marker is the alignment sequence every frame starts with.
//
// The [Reader] initializes its scan window with NUL bytes. The marker must
// never contain a NUL byte, so the initial window can not match it.
var Marker = []byte(`=="'= ALIGNMENT SEQUENCE - SOLSTICE ="'==`)

// window is the sliding scan window used to find the [Marker] in a stream.
type window struct {
	buf []byte
}

func newWindow() *window {
	return &window{buf: make([]byte, len(Marker))}
}

// push shifts the given byte in and drops the oldest one. It returns true if
// the window matches the [Marker] afterwards.
func (w *window) push(b byte) bool {
	copy(w.buf, w.buf[1:])
	w.buf[len(w.buf)-1] = b

	return bytes.Equal(w.buf, Marker)
}
