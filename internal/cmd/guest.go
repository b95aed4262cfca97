// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/aibor/solstice/internal/guest"
	"github.com/aibor/solstice/internal/protocol"
	"github.com/google/uuid"
)

func runGuest(ctx context.Context, flags *guestFlags, cfg IO) error {
	var output string

	// Read the output file first, so nothing is sent if it is missing.
	if flags.command == commandSendResults {
		var err error

		output, err = flags.outputFile.Read()
		if err != nil {
			return err
		}
	}

	stream, err := openChannel(ctx, flags.channel)
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer closeChannel(stream)

	client := guest.New(stream, nil)
	client.ReplyTimeout = time.Duration(flags.timeout) * time.Millisecond

	switch flags.command {
	case commandSendStart:
		err = client.Start(flags.name, flags.id)
	case commandSendResults:
		id := flags.id
		if id == uuid.Nil {
			id = uuid.New()
		}

		err = client.Output(protocol.TestOutput{
			ExecutionID:   id,
			Name:          flags.name,
			Output:        output,
			Dmesg:         flags.dmesg,
			ExitCode:      flags.exitCode,
			RuntimeMillis: flags.runtimeMillis,
		})
	case commandSendDone:
		err = client.Done()
	case commandWhatTests:
		err = printTests(ctx, client, cfg)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", flags.command, err)
	}

	return nil
}

func printTests(ctx context.Context, client *guest.Client, cfg IO) error {
	jobs, err := client.RequestTests(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, job := range jobs {
		fmt.Fprintln(cfg.Stdout, job)
	}

	return nil
}
