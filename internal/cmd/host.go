// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"

	"github.com/aibor/solstice/internal/host"
)

func runHost(ctx context.Context, flags *hostFlags, cfg IO) error {
	stream, err := openChannel(ctx, flags.channel)
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer closeChannel(stream)

	driver := host.Host{
		Jobs:              flags.jobs,
		Results:           cfg.Stdout,
		Diagnostics:       cfg.Stderr,
		FailOnTestFailure: flags.failOnTestFailure,
	}

	if !flags.quiet {
		driver.Echo = cfg.Stderr
	}

	_, err = driver.Run(stream)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}

	return nil
}
