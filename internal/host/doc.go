// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package host implements the host side of the protocol.
//
// The host reads the guest's messages until the guest is done, prints the
// test results and answers the guest's request for tests to run.
package host
