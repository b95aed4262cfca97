// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"

	"github.com/aibor/solstice/internal/transport"
)

const hostUsageMessage = `Usage of 'solstice-host':
    solstice-host [flags...]

Reads test progress and results of a guest from the given channel and prints
the results as JSON on stdout. The guest's console output is echoed to stderr.

Examples:
	solstice-host -channel unix:/run/vm/serial.sock
	solstice-host -channel vsock:3:1024 -job TestFoo -job TestBar
	SOLSTICE_TUNNEL_TOKEN=... solstice-host -channel wss://example.com/console

All flags can also be provided via environment variable SOLSTICE_HOST_ARGS or
via file ./.solstice-host-args, with one argument per line.
`

type hostFlags struct {
	commonFlags

	channel           transport.Address
	jobs              StringList
	quiet             bool
	failOnTestFailure bool
}

func newHostFlags(output io.Writer) *hostFlags {
	flags := &hostFlags{
		commonFlags: newCommonFlags("solstice-host", hostUsageMessage, output),
	}

	flags.initFlagset()

	return flags
}

func (f *hostFlags) initFlagset() {
	f.flagSet.TextVar(
		&f.channel,
		"channel",
		f.channel,
		"channel to the guest: device:PATH, unix:PATH, vsock:CID:PORT, "+
			"ws://URL or wss://URL",
	)

	f.flagSet.Var(
		&f.jobs,
		"job",
		"job the guest should run. Flag may be used more than once. "+
			"Empty value clears the list. No jobs means all.",
	)

	f.flagSet.BoolVar(
		&f.quiet,
		"quiet",
		f.quiet,
		"do not echo the guest's console output",
	)

	f.flagSet.BoolVar(
		&f.failOnTestFailure,
		"fail-on-test-failure",
		f.failOnTestFailure,
		"exit with code 2 if any test failed",
	)

	f.initCommonFlags()
}

func (f *hostFlags) ParseArgs(args []string) error {
	err := f.parse(args)
	if err != nil {
		return err
	}

	if f.channel.Kind == "" {
		return f.fail("no channel given (use -channel)", nil)
	}

	if f.flagSet.NArg() > 0 {
		return f.fail("unexpected arguments", nil)
	}

	return nil
}
