package api

import (
	"errors"
	
	"github.com/gin-gonic/gin"
)

var (
	ErrInternalServer        = errors.New("internal server error")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrRecipientNotFound     = errors.New("recipient not found")
	ErrJobNotFound           = errors.New("job not found")
	ErrInvalidID             = errors.New("invalid id format")
	ErrSMSBalanceUnavailable = errors.New("sms balance is unavailable")
)

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}
