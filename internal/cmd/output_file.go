// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputFile is a [flag.Value] for the file holding the output of a test.
// The path is made absolute when set, so it does not depend on the working
// directory at the time it is read.
type OutputFile string

func (f *OutputFile) String() string {
	return string(*f)
}

func (f *OutputFile) Set(s string) error {
	if s == "" {
		return ErrEmptyFilePath
	}

	path, err := filepath.Abs(s)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}

	*f = OutputFile(path)

	return nil
}

// Read returns the content of the file. Invalid UTF-8 sequences are replaced
// by the Unicode replacement character.
//
// It returns [ErrNotRegularFile] for anything but a regular file, so named
// pipes and devices are never read until EOF.
func (f OutputFile) Read() (string, error) {
	stat, err := os.Stat(string(f))
	if err != nil {
		return "", fmt.Errorf("output file: %w", err)
	}

	if !stat.Mode().IsRegular() {
		return "", fmt.Errorf("output file %s: %w", f, ErrNotRegularFile)
	}

	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", fmt.Errorf("output file: %w", err)
	}

	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
