package notification

import (
	"errors"
	"time"
	
	"github.com/google/uuid"
)

var (
	ErrMissingRecipient = errors.New("recipient id is required")
	ErrMissingCategory  = errors.New("category is required")
)

// Notification is one message sent, or attempted, to one recipient.
//
// Every mutator refreshes UpdatedAt. There is no state machine: Read, Unread
// and Cancel may be called in any order.
type Notification struct {
	id    uuid.UUID
	props Props
	now   func() time.Time
}

type Option func(*Notification)

// WithID rebuilds a notification that already has an identity, e.g. when loading it from the store.
func WithID(id uuid.UUID) Option {
	return func(n *Notification) {
		n.id = id
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Notification) {
		n.now = now
	}
}

// New creates a notification. Channel defaults to email, status to pending,
// and both timestamps to the current time.
func New(props Props, opts ...Option) (*Notification, error) {
	if props.RecipientID == "" {
		return nil, ErrMissingRecipient
	}
	if props.Category == "" {
		return nil, ErrMissingCategory
	}
	
	n := &Notification{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	
	if n.id == uuid.Nil {
		n.id = uuid.New()
	}
	
	if props.Channel == "" {
		props.Channel = ChannelEmail
	}
	if props.Status == "" {
		props.Status = StatusPending
	}
	
	now := n.now()
	if props.CreatedAt.IsZero() {
		props.CreatedAt = now
	}
	if props.UpdatedAt.IsZero() {
		props.UpdatedAt = now
	}
	
	n.props = props
	return n, nil
}

func (n *Notification) ID() uuid.UUID { return n.id }

func (n *Notification) RecipientID() string { return n.props.RecipientID }

func (n *Notification) Content() string { return n.props.Content }

func (n *Notification) Category() string { return n.props.Category }

func (n *Notification) Channel() Channel { return n.props.Channel }

func (n *Notification) Status() Status { return n.props.Status }

func (n *Notification) ReadAt() *time.Time { return n.props.ReadAt }

func (n *Notification) CanceledAt() *time.Time { return n.props.CanceledAt }

func (n *Notification) BulkNotificationID() *string { return n.props.BulkNotificationID }

func (n *Notification) CreatedAt() time.Time { return n.props.CreatedAt }

func (n *Notification) UpdatedAt() time.Time { return n.props.UpdatedAt }

func (n *Notification) SetRecipientID(recipientID string) {
	n.props.RecipientID = recipientID
	n.touch()
}

func (n *Notification) SetChannel(channel Channel) {
	n.props.Channel = channel
	n.touch()
}

func (n *Notification) SetStatus(status Status) {
	n.props.Status = status
	n.touch()
}

func (n *Notification) SetContent(content string) {
	n.props.Content = content
	n.touch()
}

func (n *Notification) SetCategory(category string) {
	n.props.Category = category
	n.touch()
}

// SetBulkNotificationID links the notification to the batch that created it. Nil unlinks it.
func (n *Notification) SetBulkNotificationID(id *string) {
	n.props.BulkNotificationID = id
	n.touch()
}

func (n *Notification) Read() {
	readAt := n.touch()
	n.props.ReadAt = &readAt
}

func (n *Notification) Unread() {
	n.props.ReadAt = nil
	n.touch()
}

// Cancel stamps CanceledAt with the current time. Calling it again overwrites the stamp.
func (n *Notification) Cancel() {
	canceledAt := n.touch()
	n.props.CanceledAt = &canceledAt
}

// touch refreshes UpdatedAt and returns the stamp it used.
// UpdatedAt never moves backwards, even if the clock does.
func (n *Notification) touch() time.Time {
	now := n.now()
	if now.After(n.props.UpdatedAt) {
		n.props.UpdatedAt = now
	}
	
	return now
}
