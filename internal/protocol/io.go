// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package protocol

import (
	"fmt"
	"log/slog"

	"github.com/aibor/solstice/internal/frame"
)

// Send encodes the given message and writes it as a single frame.
func Send(w frame.Writer, msg Message) error {
	payload, err := Marshal(msg)
	if err != nil {
		return err
	}

	err = frame.Write(w, payload)
	if err != nil {
		return fmt.Errorf("send %s: %w", msg.Tag(), err)
	}

	slog.Debug("Sent message",
		slog.String("tag", msg.Tag()),
		slog.Int("size", len(payload)))

	return nil
}

// Receive reads the next frame from the given reader and decodes it.
func Receive(r *frame.Reader) (Message, error) {
	payload, err := r.Next()
	if err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}

	msg, err := Unmarshal(payload)
	if err != nil {
		return nil, err
	}

	slog.Debug("Received message",
		slog.String("tag", msg.Tag()),
		slog.Int("size", len(payload)))

	return msg, nil
}
