package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"
)

// HashPassword returns the SHA-256 hex digest stored in the password column.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// PasswordIssues lists the policy violations for a candidate password. An
// empty result means the password is acceptable.
func PasswordIssues(password string) []string {
	var issues []string
	if len(password) < 8 {
		issues = append(issues, "8+ chars")
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		issues = append(issues, "lowercase")
	}
	if !hasUpper {
		issues = append(issues, "uppercase")
	}
	if !hasDigit {
		issues = append(issues, "digit")
	}
	return issues
}
