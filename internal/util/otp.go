package util

import (
	"crypto/rand"
	"math/big"
)

var otpDigitRange = big.NewInt(10)

// GenerateNumericOTP returns a code of random decimal digits for the email
// verification and password reset mails. Each digit is drawn independently
// from crypto/rand.
func GenerateNumericOTP(digits int) (string, error) {
	if digits <= 0 {
		digits = 6
	}
	code := make([]byte, digits)
	for i := range code {
		n, err := rand.Int(rand.Reader, otpDigitRange)
		if err != nil {
			return "", err
		}
		code[i] = '0' + byte(n.Int64())
	}
	return string(code), nil
}
