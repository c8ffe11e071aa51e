// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/sealbox/internal/errors"
)

// emailRegex is a basic email validation pattern.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string contains non-whitespace characters.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank_type", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
})

// Email validates that a string is a plausible email address.
var Email = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_email_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if !emailRegex.MatchString(s) {
		return validation.NewError("validation_email", "must be a valid email address")
	}
	return nil
})

// Base64 validates that a string is valid standard base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// HexString validates that a string is valid hexadecimal text.
var HexString = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_hex_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := hex.DecodeString(s); err != nil {
		return validation.NewError("validation_hex", "must be valid hexadecimal text")
	}
	return nil
})

// PasswordStrength validates password meets minimum security requirements.
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate checks if the password meets the configured requirements.
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError("validation_password_min_length", "password is too short")
	}
	if p.RequireUpper && !containsClass(s, unicode.IsUpper) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}
	if p.RequireLower && !containsClass(s, unicode.IsLower) {
		return validation.NewError(
			"validation_password_lowercase",
			"password must contain at least one lowercase letter",
		)
	}
	if p.RequireNumber && !containsClass(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}
	if p.RequireSpecial && !containsSpecial(s) {
		return validation.NewError(
			"validation_password_special",
			"password must contain at least one special character",
		)
	}

	return nil
}

// containsClass reports whether s has at least one rune matching fn.
func containsClass(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}

// containsSpecial reports whether s has at least one non-alphanumeric rune.
func containsSpecial(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
