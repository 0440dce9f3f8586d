package notification

import (
	"time"
)

// Channel is the delivery medium of a notification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelPush:
		return true
	}
	return false
}

func (c Channel) String() string { return string(c) }

// Status is the delivery state of a notification.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Props holds the values a Notification is built from.
// Zero values of the optional fields are replaced by defaults in New.
type Props struct {
	RecipientID        string
	Content            string
	Category           string
	Channel            Channel
	Status             Status
	ReadAt             *time.Time
	CanceledAt         *time.Time
	BulkNotificationID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
