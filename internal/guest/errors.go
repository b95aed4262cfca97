// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package guest

import "errors"

// ErrDoneSent is returned if a message is sent after [protocol.Done].
var ErrDoneSent = errors.New("done already sent")
