package notification

import (
	"context"
	"errors"
	"testing"
	"time"
	
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore overrides only the queries the repository touches.
type fakeStore struct {
	db.Store
	rows      map[uuid.UUID]db.Notification
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]db.Notification{}}
}

func (s *fakeStore) CreateNotification(_ context.Context, arg db.CreateNotificationParams) (db.Notification, error) {
	if s.createErr != nil {
		return db.Notification{}, s.createErr
	}
	if _, ok := s.rows[arg.ID]; ok {
		return db.Notification{}, errors.New("duplicate key")
	}
	s.rows[arg.ID] = db.Notification(arg)
	return s.rows[arg.ID], nil
}

func (s *fakeStore) UpsertNotification(_ context.Context, arg db.UpsertNotificationParams) (db.Notification, error) {
	s.rows[arg.ID] = db.Notification(arg)
	return s.rows[arg.ID], nil
}

func (s *fakeStore) GetNotificationByID(_ context.Context, id uuid.UUID) (db.Notification, error) {
	row, ok := s.rows[id]
	if !ok {
		return db.Notification{}, db.ErrRecordNotFound
	}
	return row, nil
}

func (s *fakeStore) ListNotificationsByRecipient(_ context.Context, recipientID string) ([]db.Notification, error) {
	var rows []db.Notification
	for _, row := range s.rows {
		if row.RecipientID == recipientID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *fakeStore) CountNotificationsByRecipient(_ context.Context, recipientID string) (int64, error) {
	var count int64
	for _, row := range s.rows {
		if row.RecipientID == recipientID {
			count++
		}
	}
	return count, nil
}

func TestRecordMapping(t *testing.T) {
	batchID := "batch-1"
	n, err := New(Props{
		RecipientID:        "r1",
		Content:            "<b>Hi</b>",
		Category:           "sms",
		Channel:            ChannelSMS,
		BulkNotificationID: &batchID,
	})
	require.NoError(t, err)
	n.Read()
	
	record := ToRecord(n)
	assert.Equal(t, n.ID(), record.ID)
	assert.Equal(t, "sms", record.Channel)
	assert.Equal(t, "pending", record.Status)
	assert.Equal(t, &batchID, record.BulkNotificationID)
	
	restored := FromRecord(record)
	assert.Equal(t, n.ID(), restored.ID())
	assert.Equal(t, n.Content(), restored.Content())
	assert.Equal(t, n.ReadAt(), restored.ReadAt())
	assert.Equal(t, n.CreatedAt(), restored.CreatedAt())
	assert.Equal(t, n.UpdatedAt(), restored.UpdatedAt())
}

func TestFromRecordFillsDefaults(t *testing.T) {
	restored := FromRecord(db.Notification{ID: uuid.New(), RecipientID: "r1", Category: "email"})
	
	assert.Equal(t, ChannelEmail, restored.Channel())
	assert.Equal(t, StatusPending, restored.Status())
	
	before := time.Now()
	restored.Cancel()
	require.NotNil(t, restored.CanceledAt())
	assert.False(t, restored.CanceledAt().Before(before))
}

func TestSQLRepository(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	repo := NewRepository(store)
	
	n := newTestNotification(t)
	require.NoError(t, repo.Create(ctx, n))
	
	n.SetStatus(StatusSent)
	require.NoError(t, repo.Save(ctx, n))
	
	found, err := repo.FindByID(ctx, n.ID())
	require.NoError(t, err)
	assert.Equal(t, StatusSent, found.Status())
	
	list, err := repo.ListByRecipient(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	
	count, err := repo.CountByRecipient(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	
	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, db.ErrRecordNotFound)
}

func TestSQLRepositoryCreateError(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection refused")
	
	err := NewRepository(store).Create(context.Background(), newTestNotification(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
