package auth

import "unicode"

// ValidatePassword enforces the registration policy: at least 8 characters
// with an uppercase letter, a lowercase letter, a digit, and a character that
// is none of those. Checked before anything is persisted; login never applies
// it.
func ValidatePassword(pwd string) error {
	var upper, lower, digit, special bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if len([]rune(pwd)) < 8 || !upper || !lower || !digit || !special {
		return &AuthError{Message: "password must be at least 8 characters and include a number, uppercase letter, lowercase letter, and special character"}
	}
	return nil
}
