package profile

import (
	"regexp"
	"strings"
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\d+\-\s]+$`)
	digitPattern = regexp.MustCompile(`\d`)
)

const maxAddressLength = 255

// ValidateFields checks field-level constraints on a profile candidate.
// All rules are applied independently; the first failure is returned as
// a *ValidationError and nothing may be persisted. Email uniqueness is a
// cross-record constraint checked separately by the service.
func ValidateFields(name, email, phone, address string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}
	return validateAddress(address)
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return &ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	if !namePattern.MatchString(trimmed) {
		return &ValidationError{Field: "name", Reason: "may only contain letters, spaces, apostrophes and hyphens"}
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "must be a valid address (user@domain.com)"}
	}
	return nil
}

func validatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" || !phonePattern.MatchString(trimmed) {
		return &ValidationError{Field: "phone", Reason: "may only contain digits, +, - and spaces"}
	}
	if len(digitPattern.FindAllString(trimmed, -1)) < 8 {
		return &ValidationError{Field: "phone", Reason: "must contain at least 8 digits"}
	}
	if len(trimmed) > 15 {
		return &ValidationError{Field: "phone", Reason: "must not exceed 15 characters"}
	}
	return nil
}

func validateAddress(address string) error {
	if len(address) > maxAddressLength {
		return &ValidationError{Field: "address", Reason: "must not exceed 255 characters"}
	}
	return nil
}
