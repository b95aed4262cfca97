// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package guest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aibor/solstice/internal/frame"
	"github.com/aibor/solstice/internal/protocol"
	"github.com/aibor/solstice/internal/transport"
	"github.com/google/uuid"
)

// DefaultReplyTimeout is the time the guest waits for the host's answer to
// [protocol.WhatTestsShouldIRun].
const DefaultReplyTimeout = 5 * time.Second

// Client sends the guest's messages on a stream.
//
// A Client is not safe for concurrent use. The stream is owned by the caller,
// who must close it once done with the client.
type Client struct {
	// ReplyTimeout bounds [Client.RequestTests]. If not set,
	// [DefaultReplyTimeout] is used.
	ReplyTimeout time.Duration

	stream   transport.Stream
	reader   *frame.Reader
	doneSent bool

	// pending is set while a receive started by RequestTests has not
	// delivered its result yet.
	pending chan received
}

type received struct {
	msg protocol.Message
	err error
}

// New creates a new [Client] on the given stream. Bytes of the stream that
// are not part of a frame are written to echo, which may be nil.
func New(stream transport.Stream, echo io.Writer) *Client {
	return &Client{
		stream: stream,
		reader: frame.NewReader(stream, echo),
	}
}

// Start announces the start of the named test. If id is [uuid.Nil], a random
// execution ID is used.
func (c *Client) Start(name string, id uuid.UUID) error {
	msg := protocol.NewTestStart(name)
	if id != uuid.Nil {
		msg.ExecutionID = id
	}

	return c.send(msg)
}

// Output reports the result of a finished test.
func (c *Client) Output(output protocol.TestOutput) error {
	return c.send(output)
}

// Done tells the host that all tests ran. It can only be sent once. Any
// further message returns [ErrDoneSent].
func (c *Client) Done() error {
	err := c.send(protocol.Done{})
	if err != nil {
		return err
	}

	c.doneSent = true

	return nil
}

func (c *Client) send(msg protocol.Message) error {
	if c.doneSent {
		return fmt.Errorf("send %s: %w", msg.Tag(), ErrDoneSent)
	}

	return protocol.Send(c.stream, msg)
}

// RequestTests asks the host for the tests to run and waits for the answer.
//
// An empty list means all tests should run. If the host does not answer
// within the reply timeout, the stream ends or can not be read, or the
// context is done, the empty list is returned without error. Only an answer
// of any other message than [protocol.PleaseRunTheseTests] is an error.
//
// The receive continues in the background after the wait ended. It returns
// once the stream is closed by the owner.
func (c *Client) RequestTests(ctx context.Context) ([]string, error) {
	err := c.send(protocol.WhatTestsShouldIRun{})
	if err != nil {
		return nil, err
	}

	if c.pending == nil {
		c.pending = make(chan received, 1)

		go func(result chan<- received) {
			msg, err := protocol.Receive(c.reader)
			result <- received{msg: msg, err: err}
		}(c.pending)
	}

	timer := time.NewTimer(c.replyTimeout())
	defer timer.Stop()

	var result received

	select {
	case result = <-c.pending:
		c.pending = nil
	case <-timer.C:
		slog.Debug("No test list received in time, run all",
			slog.Duration("timeout", c.replyTimeout()))

		return nil, nil
	case <-ctx.Done():
		slog.Debug("Waiting for test list cancelled, run all",
			slog.Any("error", ctx.Err()))

		return nil, nil
	}

	switch {
	case errors.Is(result.err, frame.ErrStreamClosed):
		slog.Debug("Stream closed before test list was received, run all")
		return nil, nil
	case result.err != nil:
		slog.Warn("Failed to receive test list, run all",
			slog.Any("error", result.err))

		return nil, nil
	}

	reply, ok := result.msg.(protocol.PleaseRunTheseTests)
	if !ok {
		return nil, fmt.Errorf("%w: got %s while waiting for test list",
			protocol.ErrProtocolViolation, result.msg.Tag())
	}

	return reply.Jobs, nil
}

func (c *Client) replyTimeout() time.Duration {
	if c.ReplyTimeout > 0 {
		return c.ReplyTimeout
	}

	return DefaultReplyTimeout
}
