package auth

import "unicode"

// IsStrongPassword reports whether the password has at least 8 characters
// and contains an upper-case letter, a lower-case letter, a digit and a
// symbol.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
