// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	hostEnvVar    = "SOLSTICE_HOST_ARGS"
	hostArgsFile  = ".solstice-host-args"
	guestEnvVar   = "SOLSTICE_GUEST_ARGS"
	guestArgsFile = ".solstice-guest-args"
)

// EnvArgs returns arguments from the given environment variable.
func EnvArgs(name string) []string {
	return strings.Fields(os.Getenv(name))
}

// LocalConfigArgs returns arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be used
// and are expanded with [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for line := range strings.SplitSeq(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs returns the arguments from the environment variable, followed by
// those of the local config file, followed by the given ones. So later
// arguments override earlier ones.
func MergedArgs(args []string, envVar string, fsys fs.FS, file string) ([]string, error) {
	fileArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config %s: %w", file, err)
	}

	merged := EnvArgs(envVar)
	merged = append(merged, fileArgs...)
	merged = append(merged, args...)

	return merged, nil
}
