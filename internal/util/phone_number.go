package util

import (
	"strings"
)

// NormalizePhoneNumber removes separators and a leading "+" so the number
// can be handed to the SMS gateway as plain digits.
func NormalizePhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.NewReplacer("-", "", " ", "", "(", "", ")", "", ".", "").Replace(phone)
	
	return strings.TrimPrefix(phone, "+")
}

// IsValidPhoneNumber checks for an international or local number of 9 to 15 digits.
func IsValidPhoneNumber(phone string) bool {
	phone = NormalizePhoneNumber(phone)
	
	if len(phone) < 9 || len(phone) > 15 {
		return false
	}
	
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	
	return true
}
