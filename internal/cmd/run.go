// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/solstice/internal/frame"
	"github.com/aibor/solstice/internal/host"
	"github.com/aibor/solstice/internal/transport"
)

// Exit codes of the commands.
const (
	exitCodeOK          = 0
	exitCodeError       = 1
	exitCodeTestsFailed = 2
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// argsParser is implemented by the flags of both commands.
type argsParser interface {
	ParseArgs(args []string) error
}

func parseArgs(parser argsParser, args []string, envVar, file string) error {
	args, err := MergedArgs(args, envVar, os.DirFS("."), file)
	if err != nil {
		return err
	}

	return parser.ParseArgs(args)
}

// openChannel opens the stream to the other side. Tunnels authenticate with
// the bearer token from the environment, if set.
func openChannel(ctx context.Context, addr transport.Address) (transport.Stream, error) {
	dialer := transport.Dialer{
		TunnelHeader: transport.BearerHeader(os.Getenv(transport.TunnelTokenEnv)),
	}

	stream, err := dialer.Open(ctx, addr)
	if err != nil {
		return nil, err
	}

	slog.Debug("Channel opened", channelAttrs(addr, stream)...)

	return stream, nil
}

func channelAttrs(addr transport.Address, stream transport.Stream) []any {
	attrs := []any{slog.String("address", addr.String())}

	switch s := stream.(type) {
	case *transport.Device:
		attrs = append(attrs, slog.String("device", s.Name()))
	case *transport.Socket:
		attrs = append(attrs, slog.String("remote", s.RemoteAddr().String()))
	}

	return attrs
}

func closeChannel(stream transport.Stream) {
	err := stream.Close()
	if err != nil {
		slog.Warn("Failed to close channel", slog.Any("error", err))
	}
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return exitCodeOK
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return exitCodeError
}

func handleRunError(err error) int {
	if errors.Is(err, host.ErrTestsFailed) {
		slog.Warn(err.Error())
		return exitCodeTestsFailed
	}

	if errors.Is(err, frame.ErrStreamClosed) {
		slog.Warn("maybe wrong channel or other side not running")
	}

	slog.Error(err.Error())

	return exitCodeError
}

// RunHost is the main entry point for the host command.
func RunHost(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags := newHostFlags(cfg.Stderr)

	err := parseArgs(flags, args, hostEnvVar, hostArgsFile)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = runHost(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return exitCodeOK
}

// RunGuest is the main entry point for the guest command.
func RunGuest(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags := newGuestFlags(cfg.Stderr)

	err := parseArgs(flags, args, guestEnvVar, guestArgsFile)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = runGuest(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return exitCodeOK
}
