// Package idcodec turns declaration references into stable identifiers and
// those identifiers into compact tokens.
//
// Base-63 alphabet: A-Z (0-25), a-z (26-51), 0-9 (52-61), _ (62).
// A 64-bit ID needs at most 11 characters, against 16 for hex.
package idcodec

import (
	"errors"
	"fmt"
)

const (
	Base     = 63
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
)

var (
	ErrEmptyString = errors.New("empty encoded string")
	ErrInvalidChar = errors.New("invalid character in encoded string")
	ErrOverflow    = errors.New("decoded value overflow")
)

// Encode encodes value in base 63. Zero encodes as "A".
func Encode(value uint64) string {
	if value == 0 {
		return Alphabet[:1]
	}
	var buf [11]byte
	pos := len(buf)
	for value > 0 {
		pos--
		buf[pos] = Alphabet[value%Base]
		value /= Base
	}
	return string(buf[pos:])
}

// Decode is the inverse of Encode
func Decode(encoded string) (uint64, error) {
	if encoded == "" {
		return 0, ErrEmptyString
	}
	var value uint64
	for _, c := range encoded {
		digit, err := digitValue(c)
		if err != nil {
			return 0, err
		}
		if value > (^uint64(0)-digit)/Base {
			return 0, ErrOverflow
		}
		value = value*Base + digit
	}
	return value, nil
}

// IsValid reports whether encoded only uses the base-63 alphabet
func IsValid(encoded string) bool {
	if encoded == "" {
		return false
	}
	for _, c := range encoded {
		if _, err := digitValue(c); err != nil {
			return false
		}
	}
	return true
}

func digitValue(c rune) (uint64, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return uint64(c - 'A'), nil
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 26, nil
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 52, nil
	case c == '_':
		return 62, nil
	default:
		return 0, fmt.Errorf("%w: %c", ErrInvalidChar, c)
	}
}
