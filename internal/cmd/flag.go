// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
)

// commonFlags are the flags and helpers shared by both commands.
type commonFlags struct {
	flagSet      *flag.FlagSet
	usageMessage string

	version bool
	debug   bool
}

func newCommonFlags(name, usageMessage string, output io.Writer) commonFlags {
	flags := commonFlags{
		flagSet:      flag.NewFlagSet(name, flag.ContinueOnError),
		usageMessage: usageMessage,
	}

	flags.flagSet.SetOutput(output)

	return flags
}

func (f *commonFlags) initCommonFlags() {
	f.flagSet.Usage = f.usage

	f.flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	f.flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)
}

// parse parses arguments up to the first one that is not prefixed with a "-"
// or is "--".
func (f *commonFlags) parse(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	return nil
}

// fail fails like flag does. It prints the error first and then usage.
func (f *commonFlags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *commonFlags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *commonFlags) usage() {
	fmt.Fprint(f.flagSet.Output(), f.usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
