package delivery

import (
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/notification"
)

const DefaultSubject = "Notification"

// TemplatePolicy decides what a bulk send does when its template id does not resolve.
type TemplatePolicy string

const (
	// TemplatePolicyLenient keeps the literal content and subject of the request.
	TemplatePolicyLenient TemplatePolicy = "lenient"
	// TemplatePolicyStrict rejects the batch before anything is sent.
	TemplatePolicyStrict TemplatePolicy = "strict"
)

func (p TemplatePolicy) Valid() bool {
	return p == TemplatePolicyLenient || p == TemplatePolicyStrict
}

type Recipient struct {
	RecipientID string            `json:"recipientId"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Variables   map[string]string `json:"variables,omitempty"`
}

type BulkRequest struct {
	BatchID         string               `json:"batchId,omitempty"`
	TemplateID      string               `json:"templateId,omitempty"`
	TemplateContent string               `json:"templateContent,omitempty"`
	TemplateSubject string               `json:"templateSubject,omitempty"`
	Channel         notification.Channel `json:"channel"`
	Recipients      []Recipient          `json:"recipients"`
	Variables       map[string]string    `json:"variables,omitempty"`
}

type RecipientResult struct {
	RecipientID string `json:"recipientId"`
	dispatcher.Outcome
}

type BulkResult struct {
	BatchID     string            `json:"batchId"`
	Success     bool              `json:"success"`
	SentCount   int               `json:"sentCount"`
	FailedCount int               `json:"failedCount"`
	Results     []RecipientResult `json:"results"`
}

// CSVRow is one pre-parsed row of an uploaded recipient sheet.
type CSVRow struct {
	ID        string            `json:"id,omitempty"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
}

type SingleRequest struct {
	RecipientID    string
	Content        string
	Category       string
	Channel        notification.Channel
	Subject        string
	RecipientEmail string
	RecipientPhone string
}

type SingleResult struct {
	Notification *notification.Notification
	Outcome      dispatcher.Outcome
}
