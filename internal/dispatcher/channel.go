package dispatcher

import (
	"context"
	"fmt"
	"regexp"
)

// ChannelHandler delivers a rendered message over one channel.
type ChannelHandler interface {
	Send(ctx context.Context, msg Message, contact Contact) Outcome
}

// EmailSender is the outbound email provider.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) (messageID string, err error)
}

// SMSSender is the outbound SMS provider.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) (messageID string, err error)
}

type Message struct {
	Subject string
	Body    string
}

type Contact struct {
	Email string
	Phone string
}

// Outcome is the normalized result of one delivery attempt.
type Outcome struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func succeeded(messageID string) Outcome {
	return Outcome{Success: true, MessageID: messageID}
}

func failed(err error) Outcome {
	return Outcome{Success: false, Error: err.Error()}
}

func missingContact(channel string) Outcome {
	return Outcome{Success: false, Error: fmt.Sprintf("No %s contact information", channel)}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes every markup tag from s.
func StripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}
