// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package protocol_test

import (
	"testing"

	"github.com/aibor/solstice/internal/protocol"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testID = uuid.MustParse("67e55044-10b1-426f-9247-bb680e5fe0c8")

func TestMarshal(t *testing.T) {
	tests := []struct {
		name     string
		msg      protocol.Message
		expected string
	}{
		{
			name: "test start",
			msg: protocol.TestStart{
				ExecutionID: testID,
				Name:        "fio-randread",
			},
			expected: `{"TestStart":{"execution_id":` +
				`"67e55044-10b1-426f-9247-bb680e5fe0c8","name":"fio-randread"}}`,
		},
		{
			name: "test output",
			msg: protocol.TestOutput{
				ExecutionID:   testID,
				Name:          "fio-randread",
				Output:        "<ok> & done\n",
				Dmesg:         "[    0.000000] Linux version",
				ExitCode:      3,
				RuntimeMillis: 1500,
			},
			expected: `{"TestOutput":{"execution_id":` +
				`"67e55044-10b1-426f-9247-bb680e5fe0c8","name":"fio-randread",` +
				`"output":"<ok> & done\n","dmesg":"[    0.000000] Linux version",` +
				`"exitcode":3,"runtime_millis":1500}}`,
		},
		{
			name:     "what tests should i run",
			msg:      protocol.WhatTestsShouldIRun{},
			expected: `"WhatTestsShouldIRun"`,
		},
		{
			name:     "done",
			msg:      protocol.Done{},
			expected: `"Done"`,
		},
		{
			name:     "please run these tests",
			msg:      protocol.PleaseRunTheseTests{Jobs: []string{"a", "b"}},
			expected: `{"PleaseRunTheseTests":["a","b"]}`,
		},
		{
			name:     "please run these tests empty",
			msg:      protocol.PleaseRunTheseTests{},
			expected: `{"PleaseRunTheseTests":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := protocol.Marshal(tt.msg)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, string(actual))
		})
	}
}

func TestMarshal_Unknown(t *testing.T) {
	_, err := protocol.Marshal(nil)
	require.ErrorIs(t, err, protocol.ErrMalformedMessage)
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	messages := []protocol.Message{
		protocol.NewTestStart("some test"),
		protocol.TestStart{},
		protocol.TestOutput{
			ExecutionID:   uuid.New(),
			Name:          "ünïcödé ✓",
			Output:        "line one\r\nline two\x00\"quoted\"",
			Dmesg:         "",
			ExitCode:      ^uint64(0),
			RuntimeMillis: 0,
		},
		protocol.WhatTestsShouldIRun{},
		protocol.Done{},
		protocol.PleaseRunTheseTests{},
		protocol.PleaseRunTheseTests{Jobs: []string{"one", "two", ""}},
	}

	for _, msg := range messages {
		t.Run(msg.Tag(), func(t *testing.T) {
			payload, err := protocol.Marshal(msg)
			require.NoError(t, err)

			actual, err := protocol.Unmarshal(payload)
			require.NoError(t, err)

			assert.Equal(t, msg, actual)
		})
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    protocol.Message
		expectedErr error
	}{
		{
			name:     "done as tuple variant",
			input:    `{"Done":[]}`,
			expected: protocol.Done{},
		},
		{
			name:     "done with null",
			input:    `{"Done":null}`,
			expected: protocol.Done{},
		},
		{
			name:     "what tests as tuple variant",
			input:    `{"WhatTestsShouldIRun":[]}`,
			expected: protocol.WhatTestsShouldIRun{},
		},
		{
			name:     "whitespace",
			input:    " \n\"Done\"\n",
			expected: protocol.Done{},
		},
		{
			name:        "done with fields",
			input:       `{"Done":[1]}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "empty",
			input:       ``,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "invalid utf8",
			input:       "\"Do\xffne\"",
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "unknown unit tag",
			input:       `"Abort"`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "unknown object tag",
			input:       `{"Abort":{}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "empty object",
			input:       `{}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "multiple tags",
			input:       `{"Done":[],"WhatTestsShouldIRun":[]}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "unknown field",
			input:       `{"TestStart":{"name":"x","color":"blue"}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "invalid execution id",
			input:       `{"TestStart":{"execution_id":"nope","name":"x"}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "negative exit code",
			input:       `{"TestOutput":{"execution_id":"67e55044-10b1-426f-9247-bb680e5fe0c8","name":"x","output":"","dmesg":"","exitcode":-1,"runtime_millis":0}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test start null",
			input:       `{"TestStart":null}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test output null",
			input:       `{"TestOutput":null}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test output without fields",
			input:       `{"TestOutput":{}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test output missing exit code",
			input:       `{"TestOutput":{"execution_id":"67e55044-10b1-426f-9247-bb680e5fe0c8","name":"x","output":"","dmesg":"","runtime_millis":0}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test start missing name",
			input:       `{"TestStart":{"execution_id":"67e55044-10b1-426f-9247-bb680e5fe0c8"}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test start field case",
			input:       `{"TestStart":{"Execution_Id":"67e55044-10b1-426f-9247-bb680e5fe0c8","NAME":"x"}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test start duplicate field in other case",
			input:       `{"TestStart":{"execution_id":"67e55044-10b1-426f-9247-bb680e5fe0c8","name":"x","NAME":"y"}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "test start null field",
			input:       `{"TestStart":{"execution_id":"67e55044-10b1-426f-9247-bb680e5fe0c8","name":null}}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "jobs null",
			input:       `{"PleaseRunTheseTests":null}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "jobs with null element",
			input:       `{"PleaseRunTheseTests":["a",null]}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:  "test start",
			input: `{"TestStart":{"execution_id":"67e55044-10b1-426f-9247-bb680e5fe0c8","name":"x"}}`,
			expected: protocol.TestStart{ExecutionID: testID, Name: "x"},
		},
		{
			name:        "jobs not strings",
			input:       `{"PleaseRunTheseTests":[1,2]}`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "array",
			input:       `["Done"]`,
			expectedErr: protocol.ErrMalformedMessage,
		},
		{
			name:        "truncated",
			input:       `{"TestStart":{"name":"x"`,
			expectedErr: protocol.ErrMalformedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := protocol.Unmarshal([]byte(tt.input))
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestTestOutput_Failed(t *testing.T) {
	assert.False(t, protocol.TestOutput{}.Failed())
	assert.True(t, protocol.TestOutput{ExitCode: 1}.Failed())
}
