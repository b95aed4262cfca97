// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Marshal returns the JSON encoding of the given message.
//
// Messages with payload are encoded as object with the message tag as only
// key. Messages without payload are encoded as plain tag string:
//
//	{"TestStart":{"execution_id":"…","name":"…"}}
//	{"PleaseRunTheseTests":["a","b"]}
//	"Done"
func Marshal(msg Message) ([]byte, error) {
	var value any

	switch m := msg.(type) {
	case TestStart, TestOutput:
		value = map[string]any{m.Tag(): m}
	case PleaseRunTheseTests:
		jobs := m.Jobs
		if jobs == nil {
			jobs = []string{}
		}

		value = map[string]any{m.Tag(): jobs}
	case WhatTestsShouldIRun, Done:
		value = m.Tag()
	default:
		return nil, fmt.Errorf("%T: %w", msg, ErrMalformedMessage)
	}

	var buf bytes.Buffer

	// Keep the output as readable as possible on raw consoles.
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Tag(), err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes the given payload into a [Message].
//
// It returns [ErrMalformedMessage] if the payload is not valid UTF-8, not
// valid JSON or has an unknown shape. Messages without payload are accepted
// as plain tag string as well as object with an empty array or null as
// value.
func Unmarshal(payload []byte) (Message, error) {
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("invalid UTF-8: %w", ErrMalformedMessage)
	}

	var unitTag string

	// Plain tag string.
	if err := json.Unmarshal(payload, &unitTag); err == nil {
		return unitMessage(unitTag)
	}

	var object map[string]json.RawMessage

	err := json.Unmarshal(payload, &object)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	if len(object) > 1 {
		return nil, fmt.Errorf("%d keys: %w", len(object), ErrMalformedMessage)
	}

	for tag, value := range object {
		return taggedMessage(tag, value)
	}

	return nil, fmt.Errorf("empty object: %w", ErrMalformedMessage)
}

func unitMessage(tag string) (Message, error) {
	switch tag {
	case tagWhatTestsShouldIRun:
		return WhatTestsShouldIRun{}, nil
	case tagDone:
		return Done{}, nil
	default:
		return nil, fmt.Errorf("unknown tag %q: %w", tag, ErrMalformedMessage)
	}
}

func taggedMessage(tag string, value json.RawMessage) (Message, error) {
	switch tag {
	case tagTestStart:
		var msg TestStart

		err := checkFields(tag, value, testStartFields)
		if err != nil {
			return nil, err
		}

		err = decodeStrict(value, &msg)
		if err != nil {
			return nil, err
		}

		return msg, nil
	case tagTestOutput:
		var msg TestOutput

		err := checkFields(tag, value, testOutputFields)
		if err != nil {
			return nil, err
		}

		err = decodeStrict(value, &msg)
		if err != nil {
			return nil, err
		}

		return msg, nil
	case tagPleaseRunTheseTests:
		var jobs []string

		err := checkElements(tag, value)
		if err != nil {
			return nil, err
		}

		err = decodeStrict(value, &jobs)
		if err != nil {
			return nil, err
		}

		if len(jobs) == 0 {
			jobs = nil
		}

		return PleaseRunTheseTests{Jobs: jobs}, nil
	case tagWhatTestsShouldIRun, tagDone:
		// Unit variants as tuple variants without fields: {"Done":[]}.
		var fields []json.RawMessage

		err := decodeStrict(value, &fields)
		if err != nil || len(fields) != 0 {
			return nil, fmt.Errorf("%s with fields: %w", tag, ErrMalformedMessage)
		}

		return unitMessage(tag)
	default:
		return nil, fmt.Errorf("unknown tag %q: %w", tag, ErrMalformedMessage)
	}
}

var (
	testStartFields  = []string{"execution_id", "name"}
	testOutputFields = []string{
		"execution_id",
		"name",
		"output",
		"dmesg",
		"exitcode",
		"runtime_millis",
	}
)

// checkFields ensures value is an object with exactly the given keys, spelled
// exactly as given, none of them null.
func checkFields(tag string, value json.RawMessage, names []string) error {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(value, &fields)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", tag, ErrMalformedMessage, err)
	}

	if fields == nil {
		return fmt.Errorf("%s is null: %w", tag, ErrMalformedMessage)
	}

	for _, name := range names {
		field, exists := fields[name]
		if !exists {
			return fmt.Errorf("%s: missing field %q: %w", tag, name, ErrMalformedMessage)
		}

		if isNull(field) {
			return fmt.Errorf("%s: field %q is null: %w", tag, name, ErrMalformedMessage)
		}
	}

	if len(fields) != len(names) {
		return fmt.Errorf("%s: unexpected fields: %w", tag, ErrMalformedMessage)
	}

	return nil
}

// checkElements ensures value is an array without null elements.
func checkElements(tag string, value json.RawMessage) error {
	var elements []json.RawMessage

	err := json.Unmarshal(value, &elements)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", tag, ErrMalformedMessage, err)
	}

	if elements == nil {
		return fmt.Errorf("%s is null: %w", tag, ErrMalformedMessage)
	}

	for idx, element := range elements {
		if isNull(element) {
			return fmt.Errorf("%s: element %d is null: %w", tag, idx, ErrMalformedMessage)
		}
	}

	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func decodeStrict(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return nil
}
