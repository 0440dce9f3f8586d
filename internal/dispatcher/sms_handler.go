package dispatcher

import (
	"context"
	
	"github.com/rs/zerolog/log"
)

type SMSHandler struct {
	sender SMSSender
}

func NewSMSHandler(sender SMSSender) *SMSHandler {
	return &SMSHandler{sender: sender}
}

// Send strips all markup from the body first; SMS is plain text.
func (h *SMSHandler) Send(ctx context.Context, msg Message, contact Contact) Outcome {
	if contact.Phone == "" {
		return missingContact("sms")
	}
	
	messageID, err := h.sender.SendSMS(ctx, contact.Phone, StripHTML(msg.Body))
	if err != nil {
		log.Error().Err(err).Str("to", maskPhone(contact.Phone)).Msg("[SMS] failed to send")
		return failed(err)
	}
	
	log.Info().Str("to", maskPhone(contact.Phone)).Str("message_id", messageID).Msg("[SMS] sent")
	return succeeded(messageID)
}
