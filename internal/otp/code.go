// Package otp generates and hashes numeric one-time codes.
package otp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
)

// Digits is the length of every generated code.
const Digits = 6

// rejectAbove is the largest multiple of 10 that fits in a byte; bytes at or above it are
// discarded so each digit is uniform over 0-9.
const rejectAbove = 250

// GenerateCode reads random bytes from r and returns a Digits-long numeric string. Each digit
// is drawn independently and uniformly.
func GenerateCode(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("otp: nil random source")
	}
	out := make([]byte, 0, Digits)
	buf := make([]byte, Digits)
	for len(out) < Digits {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == Digits {
				break
			}
		}
	}
	return string(out), nil
}

// HashCode returns the hex-encoded SHA-256 of code. Codes are stored only in this form.
func HashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

// WellFormed reports whether s looks like a code this package could have generated.
func WellFormed(s string) bool {
	if len(s) != Digits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
