// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import "errors"

// ErrTestsFailed is returned if [Host.FailOnTestFailure] is set and at least
// one test exited with non-zero exit code.
var ErrTestsFailed = errors.New("tests failed")
