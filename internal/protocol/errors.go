// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package protocol

import "errors"

var (
	// ErrMalformedMessage is returned if a payload can not be decoded into
	// a known message.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrProtocolViolation is returned if a message is received that is not
	// allowed at this point of the conversation.
	ErrProtocolViolation = errors.New("protocol violation")
)
