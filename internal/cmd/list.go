// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import "strings"

// StringList is a [flag.Value] collecting the values of a flag used more
// than once. An empty value clears the list.
type StringList []string

func (l *StringList) String() string {
	return strings.Join(*l, ",")
}

func (l *StringList) Set(s string) error {
	if s == "" {
		*l = nil
		return nil
	}

	*l = append(*l, s)

	return nil
}
