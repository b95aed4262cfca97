// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package protocol defines the messages exchanged between guest and host.
//
// The guest announces tests with [TestStart], reports results with
// [TestOutput] and finishes with [Done]. It may ask which tests to run with
// [WhatTestsShouldIRun], which the host answers with [PleaseRunTheseTests].
//
// Messages are encoded as JSON tagged by the message name and transmitted in
// frames as provided by package frame.
package protocol
