// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

const (
	modulePath = "github.com/aibor/solstice"
	binDir     = "./bin"
)

// Build builds both binaries into ./bin.
func Build() {
	mg.Deps(BuildHost, BuildGuest)
}

// BuildHost builds solstice-host for the host's architecture.
func BuildHost() error {
	return build("solstice-host", nil)
}

// BuildGuest builds a static solstice-guest. Set GOARCH for guests of another
// architecture.
func BuildGuest() error {
	return build("solstice-guest", map[string]string{"CGO_ENABLED": "0"})
}

func build(name string, env map[string]string) error {
	output := filepath.Join(binDir, name)
	source := filepath.Join("cmd", name)

	rebuild, err := target.Dir(output, source, "internal")
	if err != nil {
		return err
	}

	if !rebuild {
		return nil
	}

	pkg := fmt.Sprintf("%s/cmd/%s", modulePath, name)

	return sh.RunWithV(env, "go", "build", "-trimpath", "-o", output, pkg)
}

// Test runs all tests with the race detector. Set SHORT to skip slow tests.
func Test() error {
	args := []string{
		"test",
		"-race",
		"-timeout", "2m",
		"-cover",
		"-coverprofile", filepath.Join(os.TempDir(), "solstice-cover.out"),
	}

	if os.Getenv("SHORT") != "" {
		args = append(args, "-short")
	}

	args = append(args, "./...")

	return sh.RunV("go", args...)
}

// Clean removes built binaries.
func Clean() error {
	return sh.Rm(binDir)
}
