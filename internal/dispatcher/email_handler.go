package dispatcher

import (
	"context"
	
	"github.com/rs/zerolog/log"
)

type EmailHandler struct {
	sender EmailSender
}

func NewEmailHandler(sender EmailSender) *EmailHandler {
	return &EmailHandler{sender: sender}
}

func (h *EmailHandler) Send(ctx context.Context, msg Message, contact Contact) Outcome {
	if contact.Email == "" {
		return missingContact("email")
	}
	
	messageID, err := h.sender.SendEmail(ctx, contact.Email, msg.Subject, msg.Body, StripHTML(msg.Body))
	if err != nil {
		log.Error().Err(err).Str("to", maskEmail(contact.Email)).Msg("[EMAIL] failed to send")
		return failed(err)
	}
	
	log.Info().Str("to", maskEmail(contact.Email)).Str("message_id", messageID).Msg("[EMAIL] sent")
	return succeeded(messageID)
}
