// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package protocol

import (
	"github.com/google/uuid"
)

// Message is implemented by all protocol messages.
type Message interface {
	// Tag returns the name the message is tagged with on the wire.
	Tag() string
}

const (
	tagTestStart           = "TestStart"
	tagTestOutput          = "TestOutput"
	tagWhatTestsShouldIRun = "WhatTestsShouldIRun"
	tagDone                = "Done"
	tagPleaseRunTheseTests = "PleaseRunTheseTests"
)

// TestStart is sent by the guest right before it runs a test.
type TestStart struct {
	ExecutionID uuid.UUID `json:"execution_id"`
	Name        string    `json:"name"`
}

// NewTestStart creates a [TestStart] with a random execution ID.
func NewTestStart(name string) TestStart {
	return TestStart{
		ExecutionID: uuid.New(),
		Name:        name,
	}
}

// Tag implements [Message].
func (TestStart) Tag() string { return tagTestStart }

// TestOutput is sent by the guest once a test finished.
type TestOutput struct {
	ExecutionID   uuid.UUID `json:"execution_id"`
	Name          string    `json:"name"`
	Output        string    `json:"output"`
	Dmesg         string    `json:"dmesg"`
	ExitCode      uint64    `json:"exitcode"`
	RuntimeMillis uint64    `json:"runtime_millis"`
}

// Tag implements [Message].
func (TestOutput) Tag() string { return tagTestOutput }

// Failed returns true if the test exited with a non-zero exit code.
func (o TestOutput) Failed() bool {
	return o.ExitCode != 0
}

// WhatTestsShouldIRun is sent by the guest to ask for the tests to run.
type WhatTestsShouldIRun struct{}

// Tag implements [Message].
func (WhatTestsShouldIRun) Tag() string { return tagWhatTestsShouldIRun }

// Done is sent by the guest once all tests ran. It is the last message of a
// run.
type Done struct{}

// Tag implements [Message].
func (Done) Tag() string { return tagDone }

// PleaseRunTheseTests is the host's answer to [WhatTestsShouldIRun]. An empty
// list means all tests should run.
type PleaseRunTheseTests struct {
	Jobs []string
}

// Tag implements [Message].
func (PleaseRunTheseTests) Tag() string { return tagPleaseRunTheseTests }
