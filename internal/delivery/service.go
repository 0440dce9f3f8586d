package delivery

import (
	"context"
	"errors"
	
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/event"
	"github.com/katatrina/notify-admin/internal/notification"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoRecipients     = errors.New("no recipients to notify")
)

// TemplateFinder resolves a template id. A missing template yields db.ErrRecordNotFound.
type TemplateFinder interface {
	GetTemplate(ctx context.Context, id string) (db.EmailTemplate, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, channel notification.Channel, msg dispatcher.Message, contact dispatcher.Contact) dispatcher.Outcome
}

type RecipientLister interface {
	ListRecipients(ctx context.Context) ([]db.Recipient, error)
}

type Publisher interface {
	Broadcast(event event.Event)
}

// Alerter posts an operator-facing message.
type Alerter interface {
	Send(ctx context.Context, content string) error
}

type Service struct {
	templates     TemplateFinder
	dispatcher    Dispatcher
	notifications notification.Repository
	recipients    RecipientLister
	policy        TemplatePolicy
	publisher     Publisher
	alerter       Alerter
}

type Option func(*Service)

// WithPublisher streams per-recipient progress of every batch.
func WithPublisher(publisher Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithAlerter reports batches that had at least one failure.
func WithAlerter(alerter Alerter) Option {
	return func(s *Service) { s.alerter = alerter }
}

func WithTemplatePolicy(policy TemplatePolicy) Option {
	return func(s *Service) { s.policy = policy }
}

func NewService(
	templates TemplateFinder,
	dispatcher Dispatcher,
	notifications notification.Repository,
	recipients RecipientLister,
	opts ...Option,
) *Service {
	s := &Service{
		templates:     templates,
		dispatcher:    dispatcher,
		notifications: notifications,
		recipients:    recipients,
		policy:        TemplatePolicyLenient,
	}
	for _, opt := range opts {
		opt(s)
	}
	
	return s
}

func (s *Service) publish(e event.Event) {
	if s.publisher != nil {
		s.publisher.Broadcast(e)
	}
}
