// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package guest implements the guest side of the protocol.
//
// The guest reports test progress to the host with one way messages. It may
// ask the host which tests to run. The host is optional: if it does not
// answer in time, the guest carries on as if it was told to run all tests.
package guest
