// Package validation holds the pure field validation rules shared by the
// registration, login and account-settings flows. Every rule takes raw input
// and returns a human-readable message, or the empty string when the input is
// acceptable. Rules never touch I/O.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// AllowedEmailDomain is the single mail provider accepted at registration.
const AllowedEmailDomain = "gmail.com"

const (
	MinPhoneDigits = 8
	MaxPhoneDigits = 15
	MinPasswordLen = 8
)

var emailShape = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidateEmail checks the login-key email: non-blank, RFC-shaped, and on the
// allowed provider domain.
func ValidateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	if !emailShape.MatchString(email) {
		return "Email format is invalid"
	}
	at := strings.LastIndex(email, "@")
	if !strings.EqualFold(email[at+1:], AllowedEmailDomain) {
		return "Email must be a @" + AllowedEmailDomain + " address"
	}
	return ""
}

// ValidateName accepts letters (diacritics included) and spaces only.
func ValidateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required"
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return "Name may contain letters and spaces only"
		}
	}
	return ""
}

// ValidatePhone accepts digits only, 8 to 15 of them.
func ValidatePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "Phone number is required"
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "Phone number may contain digits only"
		}
	}
	if len(phone) < MinPhoneDigits || len(phone) > MaxPhoneDigits {
		return "Phone number must be 8 to 15 digits"
	}
	return ""
}

// ValidateStrongPassword requires at least 8 characters with one uppercase,
// one lowercase, one digit and one symbol, and no spaces.
func ValidateStrongPassword(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < MinPasswordLen {
		return "Password must be at least 8 characters"
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return "Password must not contain spaces"
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
	switch {
	case !upper:
		return "Password must contain an uppercase letter"
	case !lower:
		return "Password must contain a lowercase letter"
	case !digit:
		return "Password must contain a digit"
	case !symbol:
		return "Password must contain a symbol"
	}
	return ""
}

// ValidateConfirmation checks that the confirmation matches the password.
func ValidateConfirmation(password, confirm string) string {
	if confirm == "" {
		return "Password confirmation is required"
	}
	if password != confirm {
		return "Passwords do not match"
	}
	return ""
}
