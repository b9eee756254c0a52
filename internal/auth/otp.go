package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 6-digit verification code in [100000, 999999].
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("otp generation failed: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
