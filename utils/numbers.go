// utils/numbers.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const numberDigits = 10

// GenerateNumber returns a human-facing identifier of the form
// PREFIX + 10 random digits (e.g. RES4821937465). Uniqueness is
// enforced by the database unique index; callers that insert retry on
// a duplicate-key error.
func GenerateNumber(prefix string) string {
	digits := make([]byte, numberDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		digits[i] = byte('0' + n.Int64())
	}
	return prefix + string(digits)
}

// GenerateOTP returns a numeric one-time code of the given length.
func GenerateOTP(length int) string {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits)
}
