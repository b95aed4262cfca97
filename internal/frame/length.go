// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package frame

import (
	"fmt"
	"math/big"
	"strings"
)

// LengthFieldSize is the number of decimal digits of the length field.
const LengthFieldSize = 24

// maxLength is the largest value the length field can hold: 10^24 - 1.
var maxLength = new(big.Int).Sub(
	new(big.Int).Exp(big.NewInt(10), big.NewInt(LengthFieldSize), nil),
	big.NewInt(1),
)

// FormatLength formats the given length as zero padded decimal number of
// exactly [LengthFieldSize] digits.
func FormatLength(n *big.Int) ([]byte, error) {
	if n.Sign() < 0 || n.Cmp(maxLength) > 0 {
		return nil, fmt.Errorf("%s: %w", n, ErrLengthOverflow)
	}

	digits := n.String()
	padding := strings.Repeat("0", LengthFieldSize-len(digits))

	return []byte(padding + digits), nil
}

// ParseLength parses a length field as written by [FormatLength].
//
// The field must consist of exactly [LengthFieldSize] ASCII digits.
func ParseLength(field []byte) (*big.Int, error) {
	if len(field) != LengthFieldSize {
		return nil, fmt.Errorf("%d bytes: %w", len(field), ErrMalformedLength)
	}

	for _, b := range field {
		if b < '0' || b > '9' {
			return nil, fmt.Errorf("%q: %w", field, ErrMalformedLength)
		}
	}

	n, ok := new(big.Int).SetString(string(field), 10)
	if !ok {
		return nil, fmt.Errorf("%q: %w", field, ErrMalformedLength)
	}

	return n, nil
}
