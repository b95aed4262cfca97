// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aibor/solstice/internal/guest"
	"github.com/aibor/solstice/internal/transport"
	"github.com/google/uuid"
)

const (
	commandSendStart   = "send-start"
	commandSendResults = "send-results"
	commandSendDone    = "send-done"
	commandWhatTests   = "what-tests"

	timeoutMin = 1
	timeoutMax = 600_000
)

const guestUsageMessage = `Usage of 'solstice-guest':
    solstice-guest [flags...] command [command flags...]

Commands:
    send-start    announce the start of a test
    send-results  send the result of a finished test
    send-done     tell the host all tests ran
    what-tests    ask the host which tests to run and print one per line.
                  Prints nothing if the host does not answer in time.

Use "solstice-guest command -help" for the command's flags.

All flags can also be provided via environment variable SOLSTICE_GUEST_ARGS
or via file ./.solstice-guest-args, with one argument per line.
`

var defaultChannel = transport.Address{
	Kind: transport.KindDevice,
	Path: "/dev/ttyS0",
}

type guestFlags struct {
	commonFlags

	channel transport.Address
	timeout uint64
	command string

	name          string
	id            uuid.UUID
	outputFile    OutputFile
	dmesg         string
	exitCode      uint64
	runtimeMillis uint64
}

func newGuestFlags(output io.Writer) *guestFlags {
	flags := &guestFlags{
		commonFlags: newCommonFlags("solstice-guest", guestUsageMessage, output),
		channel:     defaultChannel,
		timeout:     uint64(guest.DefaultReplyTimeout.Milliseconds()),
	}

	flags.initFlagset()

	return flags
}

func (f *guestFlags) initFlagset() {
	f.flagSet.TextVar(
		&f.channel,
		"channel",
		f.channel,
		"channel to the host: device:PATH, unix:PATH, vsock:CID:PORT, "+
			"ws://URL or wss://URL",
	)

	f.flagSet.Var(
		&LimitedUintValue{
			Value: &f.timeout,
			Lower: timeoutMin,
			Upper: timeoutMax,
		},
		"timeout",
		"time (in ms) to wait for the host's answer to what-tests",
	)

	f.initCommonFlags()
}

// commandFlagSet returns the flag set for the given command.
func (f *guestFlags) commandFlagSet(command string) (*flag.FlagSet, error) {
	flagSet := flag.NewFlagSet(command, flag.ContinueOnError)
	flagSet.SetOutput(f.flagSet.Output())

	idFlag := func() {
		flagSet.TextVar(
			&f.id,
			"id",
			uuid.Nil,
			"execution ID of the test (default random)",
		)
	}

	switch command {
	case commandSendStart:
		flagSet.StringVar(&f.name, "name", f.name, "name of the test")
		idFlag()
	case commandSendResults:
		flagSet.StringVar(&f.name, "name", f.name, "name of the test")
		flagSet.Var(&f.outputFile, "output", "file with the output of the test")
		flagSet.StringVar(&f.dmesg, "dmesg", f.dmesg, "kernel log of the test")
		flagSet.Uint64Var(&f.exitCode, "exitcode", f.exitCode,
			"exit code of the test")
		flagSet.Uint64Var(&f.runtimeMillis, "runtime-millis", f.runtimeMillis,
			"runtime of the test in ms")
		idFlag()
	case commandSendDone, commandWhatTests:
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}

	return flagSet, nil
}

func (f *guestFlags) ParseArgs(args []string) error {
	err := f.parse(args)
	if err != nil {
		return err
	}

	positionalArgs := f.flagSet.Args()
	if len(positionalArgs) < 1 {
		return f.fail("no command given", nil)
	}

	f.command = positionalArgs[0]

	commandFlags, err := f.commandFlagSet(f.command)
	if err != nil {
		return f.fail("command", err)
	}

	err = commandFlags.Parse(positionalArgs[1:])
	if err != nil {
		return &ParseArgsError{msg: f.command + " flag parse", err: err}
	}

	if commandFlags.NArg() > 0 {
		return f.fail("unexpected arguments: "+
			strings.Join(commandFlags.Args(), " "), nil)
	}

	return f.validate()
}

func (f *guestFlags) validate() error {
	switch f.command {
	case commandSendStart, commandSendResults:
		if f.name == "" {
			return f.fail("no test name given (use -name)", nil)
		}
	}

	if f.command == commandSendResults && f.outputFile == "" {
		return f.fail("no output file given (use -output)", nil)
	}

	return nil
}
