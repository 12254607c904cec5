// File: /utils/validators.go
package utils

import (
	"regexp"
	"unicode"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// At least 3 of 4 character types required
	count := 0
	if hasUpper {
		count++
	}
	if hasLower {
		count++
	}
	if hasNumber {
		count++
	}
	if hasSpecial {
		count++
	}

	return count >= 3
}

// IsValidCardNumber accepts 12-19 digits, with optional spaces or dashes.
// The payment flow is simulated, so no issuer checks beyond shape.
func IsValidCardNumber(cardNumber string) bool {
	digits := 0
	for _, char := range cardNumber {
		switch {
		case unicode.IsDigit(char):
			digits++
		case char == ' ' || char == '-':
			// separators allowed
		default:
			return false
		}
	}
	return digits >= 12 && digits <= 19
}
