package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// KeyEmailAuth is the Redis key holding the verification code sent to email
func KeyEmailAuth(email string) string {
	return "EMAIL_AUTH_" + email
}

// GenAuthCode generates a secure random 6-digit code as a zero-padded string
func GenAuthCode() (string, error) {
	return genDigits(6)
}

// GenAttendanceCode generates the 4-digit code members type to attend a seminar
func GenAttendanceCode() (string, error) {
	return genDigits(4)
}

func genDigits(n int) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < n; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}

// GenDistinctDigits returns n distinct random digits, n at most 10.
func GenDistinctDigits(n int) (string, error) {
	digits := []byte("0123456789")
	for i := 0; i < n; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits)-i)))
		if err != nil {
			return "", err
		}
		k := i + int(j.Int64())
		digits[i], digits[k] = digits[k], digits[i]
	}
	return string(digits[:n]), nil
}
