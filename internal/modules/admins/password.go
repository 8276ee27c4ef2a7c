package admins

import "unicode"

// ValidateNewPassword enforces the canonical password policy: at least
// 8 characters with a lowercase letter, an uppercase letter, a digit
// and a non-alphanumeric character, checked in that order.
func ValidateNewPassword(pw string) error {
	if len(pw) < 8 {
		return &PolicyError{Msg: "Password must be at least 8 characters long."}
	}
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !lower {
		return &PolicyError{Msg: "Password must contain a lowercase letter."}
	}
	if !upper {
		return &PolicyError{Msg: "Password must contain an uppercase letter."}
	}
	if !digit {
		return &PolicyError{Msg: "Password must contain a digit."}
	}
	if !special {
		return &PolicyError{Msg: "Password must contain a special character."}
	}
	return nil
}
