package delivery

import (
	"context"
	"errors"
	"fmt"
	
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/event"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/katatrina/notify-admin/internal/render"
	"github.com/rs/zerolog/log"
)

// RecipientProgress is published after every recipient of a batch.
type RecipientProgress struct {
	BatchID   string          `json:"batchId"`
	Index     int             `json:"index"`
	Total     int             `json:"total"`
	Result    RecipientResult `json:"result"`
	SentCount int             `json:"sentCount"`
	Failed    int             `json:"failedCount"`
}

// SendBulk renders and delivers one message per recipient, strictly in order.
// Per-recipient failures end up in the result; only errors raised before the
// first recipient is processed are returned.
func (s *Service) SendBulk(ctx context.Context, req BulkRequest) (BulkResult, error) {
	subject, content, err := s.resolveTemplate(ctx, req)
	if err != nil {
		return BulkResult{}, err
	}
	
	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}
	
	// A batch always runs to completion once started.
	ctx = context.WithoutCancel(ctx)
	
	result := BulkResult{
		BatchID: batchID,
		Results: make([]RecipientResult, 0, len(req.Recipients)),
	}
	
	log.Info().Str("batch_id", batchID).Str("channel", string(req.Channel)).
		Msgf("bulk dispatch started for %s recipients", humanize.Comma(int64(len(req.Recipients))))
	
	for i, recipient := range req.Recipients {
		outcome := s.processRecipient(ctx, batchID, req, subject, content, recipient)
		if outcome.Success {
			result.SentCount++
		} else {
			result.FailedCount++
		}
		result.Results = append(result.Results, outcome)
		
		s.publish(event.Event{
			Topic: event.BatchTopic(batchID),
			Type:  event.EventTypeRecipientProcessed,
			Data: RecipientProgress{
				BatchID:   batchID,
				Index:     i,
				Total:     len(req.Recipients),
				Result:    outcome,
				SentCount: result.SentCount,
				Failed:    result.FailedCount,
			},
		})
	}
	
	result.Success = result.SentCount > 0
	
	s.publish(event.Event{
		Topic: event.BatchTopic(batchID),
		Type:  event.EventTypeBatchCompleted,
		Data:  result,
	})
	
	log.Info().Str("batch_id", batchID).Int("sent", result.SentCount).Int("failed", result.FailedCount).
		Msg("bulk dispatch completed ✅")
	
	if result.FailedCount > 0 {
		s.alertFailures(ctx, req.Channel, result)
	}
	
	return result, nil
}

// resolveTemplate returns the subject and body a batch is rendered from.
func (s *Service) resolveTemplate(ctx context.Context, req BulkRequest) (subject string, content string, err error) {
	subject = req.TemplateSubject
	if subject == "" {
		subject = DefaultSubject
	}
	content = req.TemplateContent
	
	if req.TemplateID == "" {
		return subject, content, nil
	}
	
	template, err := s.templates.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			if s.policy == TemplatePolicyStrict {
				return "", "", fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplateID)
			}
			
			log.Warn().Str("template_id", req.TemplateID).Msg("template not found, using request content")
			return subject, content, nil
		}
		
		return "", "", fmt.Errorf("failed to get template %s: %w", req.TemplateID, err)
	}
	
	subject = template.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	
	return subject, template.HtmlBody, nil
}

func (s *Service) processRecipient(
	ctx context.Context,
	batchID string,
	req BulkRequest,
	subject, content string,
	recipient Recipient,
) (result RecipientResult) {
	result.RecipientID = recipient.RecipientID
	
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("batch_id", batchID).
				Str("recipient_id", recipient.RecipientID).Msg("recipient processing panicked")
			result.Outcome = dispatcher.Outcome{Success: false, Error: fmt.Sprintf("%v", r)}
		}
	}()
	
	vars := render.Merge(req.Variables, recipient.Variables)
	renderedSubject, renderedBody := render.Message(subject, content, vars)
	
	outcome := s.dispatcher.Dispatch(
		ctx,
		req.Channel,
		dispatcher.Message{Subject: renderedSubject, Body: renderedBody},
		dispatcher.Contact{Email: recipient.Email, Phone: recipient.Phone},
	)
	if !outcome.Success {
		result.Outcome = outcome
		return result
	}
	
	if err := s.recordSent(ctx, batchID, req.Channel, recipient.RecipientID, renderedBody); err != nil {
		log.Error().Err(err).Str("batch_id", batchID).Str("recipient_id", recipient.RecipientID).
			Msg("message delivered but not recorded")
		result.Outcome = dispatcher.Outcome{
			Success:   false,
			MessageID: outcome.MessageID,
			Error:     fmt.Sprintf("message delivered but failed to record notification: %s", err),
		}
		return result
	}
	
	result.Outcome = outcome
	return result
}

func (s *Service) recordSent(ctx context.Context, batchID string, channel notification.Channel, recipientID, body string) error {
	n, err := notification.New(notification.Props{
		RecipientID:        recipientID,
		Content:            body,
		Category:           string(channel),
		Channel:            channel,
		BulkNotificationID: &batchID,
	})
	if err != nil {
		return err
	}
	n.SetStatus(notification.StatusSent)
	
	return s.notifications.Create(ctx, n)
}

func (s *Service) alertFailures(ctx context.Context, channel notification.Channel, result BulkResult) {
	if s.alerter == nil {
		return
	}
	
	total := int64(result.SentCount + result.FailedCount)
	message := fmt.Sprintf(
		"⚠️ Bulk %s batch `%s`: %s of %s recipients failed (%s sent).",
		channel,
		result.BatchID,
		humanize.Comma(int64(result.FailedCount)),
		humanize.Comma(total),
		humanize.Comma(int64(result.SentCount)),
	)
	if first := firstFailure(result.Results); first != nil {
		message += fmt.Sprintf("\nFirst failure: %s: %s", first.RecipientID, first.Error)
	}
	
	if err := s.alerter.Send(ctx, message); err != nil {
		log.Error().Err(err).Str("batch_id", result.BatchID).Msg("failed to send batch alert")
	}
}

func firstFailure(results []RecipientResult) *RecipientResult {
	for i := range results {
		if !results[i].Success {
			return &results[i]
		}
	}
	return nil
}
