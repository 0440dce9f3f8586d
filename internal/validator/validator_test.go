package validator

import (
	"strings"
	"testing"
	
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "ana@example.com", false},
		{"too short", "a@b", true},
		{"missing at", "ana.example.com", true},
		{"too long", strings.Repeat("a", 195) + "@x.com", true},
	}
	
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEmail(tc.email)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.NoError(t, ValidatePhoneNumber("+254 712 345 678"))
	assert.Error(t, ValidatePhoneNumber("12-34"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Welcome"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("n", 101)))
}

func TestValidateVariables(t *testing.T) {
	require.NoError(t, ValidateVariables(map[string]string{"name": "Ana", "order_id": "42"}))
	require.NoError(t, ValidateVariables(nil))
	
	err := ValidateVariables(map[string]string{"{name}": "Ana"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not contain braces")
	
	assert.Error(t, ValidateVariables(map[string]string{"": "x"}))
}
