package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
	
	"github.com/katatrina/notify-admin/internal/util"
)

func ValidateString(value string, minLength int, maxLength int) error {
	n := utf8.RuneCountInString(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}
	
	return nil
}

func ValidateEmail(value string) error {
	if err := ValidateString(value, 6, 200); err != nil {
		return err
	}
	
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("is not a valid email address")
	}
	
	return nil
}

func ValidatePhoneNumber(value string) error {
	if !util.IsValidPhoneNumber(value) {
		return fmt.Errorf("is not a valid phone number")
	}
	
	return nil
}

func ValidateName(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("must not be blank")
	}
	
	return ValidateString(value, 1, 100)
}

// ValidateVariableName checks a template variable key. Keys are substituted
// as "{key}", so they cannot contain braces.
func ValidateVariableName(value string) error {
	if value == "" {
		return fmt.Errorf("must not be empty")
	}
	if strings.ContainsAny(value, "{}") {
		return fmt.Errorf("must not contain braces")
	}
	
	return nil
}

// ValidateVariables returns the first invalid key of vars, if any.
func ValidateVariables(vars map[string]string) error {
	for key := range vars {
		if err := ValidateVariableName(key); err != nil {
			return fmt.Errorf("variable %q %w", key, err)
		}
	}
	
	return nil
}
