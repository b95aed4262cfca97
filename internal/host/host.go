// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/solstice/internal/frame"
	"github.com/aibor/solstice/internal/protocol"
	"github.com/aibor/solstice/internal/transport"
)

// Host drives the host side of a single run.
type Host struct {
	// Jobs is sent to the guest if it asks for the tests to run. Empty means
	// all tests.
	Jobs []string

	// Results receives each test result as indented JSON. May be nil.
	Results io.Writer

	// Diagnostics receives a line for each started test. May be nil.
	Diagnostics io.Writer

	// Echo receives the console output of the guest in between frames. May
	// be nil.
	Echo io.Writer

	// FailOnTestFailure makes [Host.Run] return [ErrTestsFailed] if any test
	// failed.
	FailOnTestFailure bool
}

// Summary counts the messages of a run.
type Summary struct {
	Started int
	Results int
	Failed  int
}

// LogValue implements [slog.LogValuer].
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("started", s.Started),
		slog.Int("results", s.Results),
		slog.Int("failed", s.Failed),
	)
}

// run is the state of a single [Host.Run].
type run struct {
	*Host

	stream        transport.Stream
	summary       Summary
	jobsRequested bool
}

// Run reads messages from the stream until the guest sends
// [protocol.Done]. It returns an error if the stream fails or ends before, or
// the guest violates the protocol.
//
// The stream is not closed.
func (h *Host) Run(stream transport.Stream) (Summary, error) {
	state := run{Host: h, stream: stream}
	reader := frame.NewReader(stream, h.Echo)

	err := state.loop(reader)

	slog.Info("Run finished", slog.Any("summary", state.summary))

	if err != nil {
		return state.summary, err
	}

	if h.FailOnTestFailure && state.summary.Failed > 0 {
		return state.summary, fmt.Errorf("%d of %d: %w",
			state.summary.Failed, state.summary.Results, ErrTestsFailed)
	}

	return state.summary, nil
}

func (r *run) loop(reader *frame.Reader) error {
	for {
		msg, err := protocol.Receive(reader)
		if err != nil {
			return err
		}

		done, err := r.handle(msg)
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

func (r *run) handle(msg protocol.Message) (bool, error) {
	switch msg := msg.(type) {
	case protocol.TestStart:
		r.summary.Started++
		r.diagnostic("Starting test %s (%s)", msg.Name, msg.ExecutionID)
	case protocol.TestOutput:
		r.summary.Results++
		if msg.Failed() {
			r.summary.Failed++
		}

		return false, r.printResult(msg)
	case protocol.WhatTestsShouldIRun:
		if r.jobsRequested {
			return false, fmt.Errorf("%w: tests requested twice",
				protocol.ErrProtocolViolation)
		}

		r.jobsRequested = true

		return false, protocol.Send(r.stream, protocol.PleaseRunTheseTests{Jobs: r.Jobs})
	case protocol.Done:
		return true, nil
	default:
		return false, fmt.Errorf("%w: unexpected %s from guest",
			protocol.ErrProtocolViolation, msg.Tag())
	}

	return false, nil
}

func (r *run) diagnostic(format string, args ...any) {
	if r.Diagnostics == nil {
		return
	}

	_, err := fmt.Fprintf(r.Diagnostics, format+"\n", args...)
	if err != nil {
		slog.Warn("Failed to write diagnostic", slog.Any("error", err))
	}
}

func (r *run) printResult(output protocol.TestOutput) error {
	results := r.Results
	if results == nil {
		results = io.Discard
	}

	encoder := json.NewEncoder(results)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(output)
	if err != nil {
		return fmt.Errorf("print result: %w", err)
	}

	return nil
}
