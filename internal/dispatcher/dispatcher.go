package dispatcher

import (
	"context"
	"fmt"
	"strings"
	
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/rs/zerolog/log"
)

type Dispatcher struct {
	handlers map[notification.Channel]ChannelHandler
}

func NewDispatcher(emailSender EmailSender, smsSender SMSSender) *Dispatcher {
	return &Dispatcher{
		handlers: map[notification.Channel]ChannelHandler{
			notification.ChannelEmail: NewEmailHandler(emailSender),
			notification.ChannelSMS:   NewSMSHandler(smsSender),
			notification.ChannelPush:  &PushHandler{},
		},
	}
}

// Dispatch sends msg to contact over channel. Provider errors and panics
// come back as a failed Outcome; Dispatch itself never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, channel notification.Channel, msg Message, contact Contact) (outcome Outcome) {
	handler, exists := d.handlers[channel]
	if !exists {
		log.Warn().Str("channel", string(channel)).Msg("unsupported channel")
		return Outcome{Success: false, Error: fmt.Sprintf("unsupported channel: %s", channel)}
	}
	
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("channel", string(channel)).Msg("channel handler panicked")
			outcome = Outcome{Success: false, Error: fmt.Sprintf("%v", r)}
		}
	}()
	
	return handler.Send(ctx, msg, contact)
}

func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

func maskPhone(phone string) string {
	if len(phone) <= 3 {
		return "***"
	}
	return "***" + phone[len(phone)-3:]
}
