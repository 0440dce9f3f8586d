package delivery

import (
	"context"
	"fmt"
	
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/rs/zerolog/log"
)

// SendWithChannel records a pending notification, delivers it once and stores
// the final status. The entity is returned even when delivery failed.
func (s *Service) SendWithChannel(ctx context.Context, req SingleRequest) (SingleResult, error) {
	n, err := notification.New(notification.Props{
		RecipientID: req.RecipientID,
		Content:     req.Content,
		Category:    req.Category,
		Channel:     req.Channel,
	})
	if err != nil {
		return SingleResult{}, err
	}
	
	if err = s.notifications.Create(ctx, n); err != nil {
		return SingleResult{}, err
	}
	
	subject := req.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	
	outcome := s.dispatcher.Dispatch(
		context.WithoutCancel(ctx),
		n.Channel(),
		dispatcher.Message{Subject: subject, Body: req.Content},
		dispatcher.Contact{Email: req.RecipientEmail, Phone: req.RecipientPhone},
	)
	
	if outcome.Success {
		n.SetStatus(notification.StatusSent)
	} else {
		n.SetStatus(notification.StatusFailed)
	}
	
	if err = s.notifications.Save(ctx, n); err != nil {
		return SingleResult{}, fmt.Errorf("failed to update status of notification %s: %w", n.ID(), err)
	}
	
	log.Info().Str("notification_id", n.ID().String()).Str("channel", string(n.Channel())).
		Str("status", string(n.Status())).Msg("notification processed")
	
	return SingleResult{Notification: n, Outcome: outcome}, nil
}
