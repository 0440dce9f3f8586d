package notification

import (
	"context"
	"fmt"
	"time"
	
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
)

// Repository persists notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// Save inserts the notification or overwrites the stored copy with the same id.
	Save(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*Notification, error)
	CountByRecipient(ctx context.Context, recipientID string) (int64, error)
}

type SQLRepository struct {
	store db.Store
}

func NewRepository(store db.Store) *SQLRepository {
	return &SQLRepository{store: store}
}

func (r *SQLRepository) Create(ctx context.Context, n *Notification) error {
	_, err := r.store.CreateNotification(ctx, db.CreateNotificationParams(ToRecord(n)))
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	
	return nil
}

func (r *SQLRepository) Save(ctx context.Context, n *Notification) error {
	_, err := r.store.UpsertNotification(ctx, db.UpsertNotificationParams(ToRecord(n)))
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	record, err := r.store.GetNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	
	return FromRecord(record), nil
}

func (r *SQLRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*Notification, error) {
	records, err := r.store.ListNotificationsByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications of recipient %s: %w", recipientID, err)
	}
	
	notifications := make([]*Notification, len(records))
	for i, record := range records {
		notifications[i] = FromRecord(record)
	}
	
	return notifications, nil
}

func (r *SQLRepository) CountByRecipient(ctx context.Context, recipientID string) (int64, error) {
	return r.store.CountNotificationsByRecipient(ctx, recipientID)
}

// ToRecord maps the entity to its database row.
func ToRecord(n *Notification) db.Notification {
	return db.Notification{
		ID:                 n.id,
		RecipientID:        n.props.RecipientID,
		Content:            n.props.Content,
		Category:           n.props.Category,
		Channel:            string(n.props.Channel),
		Status:             string(n.props.Status),
		ReadAt:             n.props.ReadAt,
		CanceledAt:         n.props.CanceledAt,
		BulkNotificationID: n.props.BulkNotificationID,
		CreatedAt:          n.props.CreatedAt,
		UpdatedAt:          n.props.UpdatedAt,
	}
}

// FromRecord rebuilds the entity from a database row.
func FromRecord(record db.Notification) *Notification {
	channel := Channel(record.Channel)
	if channel == "" {
		channel = ChannelEmail
	}
	status := Status(record.Status)
	if status == "" {
		status = StatusPending
	}
	
	return &Notification{
		id: record.ID,
		props: Props{
			RecipientID:        record.RecipientID,
			Content:            record.Content,
			Category:           record.Category,
			Channel:            channel,
			Status:             status,
			ReadAt:             record.ReadAt,
			CanceledAt:         record.CanceledAt,
			BulkNotificationID: record.BulkNotificationID,
			CreatedAt:          record.CreatedAt,
			UpdatedAt:          record.UpdatedAt,
		},
		now: time.Now,
	}
}
