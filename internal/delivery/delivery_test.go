package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/event"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplates struct {
	templates map[string]db.EmailTemplate
	err       error
}

func (f *fakeTemplates) GetTemplate(_ context.Context, id string) (db.EmailTemplate, error) {
	if f.err != nil {
		return db.EmailTemplate{}, f.err
	}
	template, ok := f.templates[id]
	if !ok {
		return db.EmailTemplate{}, db.ErrRecordNotFound
	}
	return template, nil
}

type sentMessage struct {
	channel notification.Channel
	msg     dispatcher.Message
	contact dispatcher.Contact
}

// fakeDispatcher mimics the real dispatcher: a missing contact fails, and
// contacts listed in failFor get a provider error.
type fakeDispatcher struct {
	sent    []sentMessage
	failFor map[string]string
	panicOn string
	ctxErrs []error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, channel notification.Channel, msg dispatcher.Message, contact dispatcher.Contact) dispatcher.Outcome {
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	address := contact.Email
	if channel == notification.ChannelSMS {
		address = contact.Phone
	}
	if address == "" {
		return dispatcher.Outcome{Success: false, Error: fmt.Sprintf("No %s contact information", channel)}
	}
	if address == f.panicOn {
		panic("provider exploded")
	}
	if reason, ok := f.failFor[address]; ok {
		return dispatcher.Outcome{Success: false, Error: reason}
	}
	
	f.sent = append(f.sent, sentMessage{channel: channel, msg: msg, contact: contact})
	return dispatcher.Outcome{Success: true, MessageID: "msg-" + address}
}

type memoryRepository struct {
	mu      sync.Mutex
	created []*notification.Notification
	saved   []*notification.Notification
	err     error
}

func (r *memoryRepository) Create(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, n)
	return nil
}

func (r *memoryRepository) Save(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, n)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*notification.Notification, error) {
	for _, n := range r.created {
		if n.ID() == id {
			return n, nil
		}
	}
	return nil, db.ErrRecordNotFound
}

func (r *memoryRepository) ListByRecipient(_ context.Context, _ string) ([]*notification.Notification, error) {
	return r.created, nil
}

func (r *memoryRepository) CountByRecipient(_ context.Context, _ string) (int64, error) {
	return int64(len(r.created)), nil
}

type fakeRecipients struct {
	recipients []db.Recipient
	err        error
}

func (f *fakeRecipients) ListRecipients(_ context.Context) ([]db.Recipient, error) {
	return f.recipients, f.err
}

type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) Broadcast(e event.Event) {
	p.events = append(p.events, e)
}

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Send(_ context.Context, content string) error {
	a.messages = append(a.messages, content)
	return nil
}

type fixture struct {
	templates  *fakeTemplates
	dispatcher *fakeDispatcher
	repo       *memoryRepository
	recipients *fakeRecipients
	publisher  *recordingPublisher
	alerter    *recordingAlerter
}

func newFixture() *fixture {
	return &fixture{
		templates:  &fakeTemplates{templates: map[string]db.EmailTemplate{}},
		dispatcher: &fakeDispatcher{failFor: map[string]string{}},
		repo:       &memoryRepository{},
		recipients: &fakeRecipients{},
		publisher:  &recordingPublisher{},
		alerter:    &recordingAlerter{},
	}
}

func (f *fixture) service(opts ...Option) *Service {
	opts = append([]Option{WithPublisher(f.publisher), WithAlerter(f.alerter)}, opts...)
	return NewService(f.templates, f.dispatcher, f.repo, f.recipients, opts...)
}

func TestSendBulkPersonalizesEachRecipient(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateContent: "Hello {name}, your code is {code}",
		TemplateSubject: "Hi {name}",
		Channel:         notification.ChannelEmail,
		Variables:       map[string]string{"code": "GLOBAL"},
		Recipients: []Recipient{
			{RecipientID: "r1", Email: "ana@example.com", Variables: map[string]string{"name": "Ana"}},
			{RecipientID: "r2", Email: "ben@example.com", Variables: map[string]string{"name": "Ben", "code": "B-7"}},
		},
	})
	require.NoError(t, err)
	
	require.Len(t, f.dispatcher.sent, 2)
	assert.Equal(t, "Hi Ana", f.dispatcher.sent[0].msg.Subject)
	assert.Equal(t, "Hello Ana, your code is GLOBAL", f.dispatcher.sent[0].msg.Body)
	assert.Equal(t, "Hello Ben, your code is B-7", f.dispatcher.sent[1].msg.Body)
	
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Equal(t, "msg-ana@example.com", result.Results[0].MessageID)
	assert.Empty(t, f.alerter.messages)
}

func TestSendBulkPartialFailure(t *testing.T) {
	f := newFixture()
	f.dispatcher.failFor["cy@example.com"] = "mailbox unavailable"
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateContent: "Hi",
		Channel:         notification.ChannelEmail,
		Recipients: []Recipient{
			{RecipientID: "r1", Email: "ana@example.com"},
			{RecipientID: "r2"},
			{RecipientID: "r3", Email: "cy@example.com"},
			{RecipientID: "r4", Email: "dee@example.com"},
		},
	})
	require.NoError(t, err)
	
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, 2, result.FailedCount)
	
	// input order is preserved
	ids := make([]string, len(result.Results))
	for i, r := range result.Results {
		ids[i] = r.RecipientID
	}
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids)
	
	assert.False(t, result.Results[1].Success)
	assert.Equal(t, "No email contact information", result.Results[1].Error)
	assert.Equal(t, "mailbox unavailable", result.Results[2].Error)
	
	// only successes are persisted
	require.Len(t, f.repo.created, 2)
	assert.Equal(t, "r1", f.repo.created[0].RecipientID())
	assert.Equal(t, "r4", f.repo.created[1].RecipientID())
	
	require.Len(t, f.alerter.messages, 1)
	assert.Contains(t, f.alerter.messages[0], "2 of 4 recipients failed")
}

func TestSendBulkPersistedNotification(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		BatchID:         "batch-42",
		TemplateContent: "<p>Code {code}</p>",
		Channel:         notification.ChannelSMS,
		Recipients:      []Recipient{{RecipientID: "r1", Phone: "254712345678", Variables: map[string]string{"code": "9"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "batch-42", result.BatchID)
	
	require.Len(t, f.repo.created, 1)
	n := f.repo.created[0]
	assert.Equal(t, "<p>Code 9</p>", n.Content())
	assert.Equal(t, "sms", n.Category())
	assert.Equal(t, notification.ChannelSMS, n.Channel())
	assert.Equal(t, notification.StatusSent, n.Status())
	require.NotNil(t, n.BulkNotificationID())
	assert.Equal(t, "batch-42", *n.BulkNotificationID())
}

func TestSendBulkAllFailed(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateContent: "Hi",
		Channel:         notification.ChannelSMS,
		Recipients:      []Recipient{{RecipientID: "r1", Email: "a@example.com"}, {RecipientID: "r2"}},
	})
	require.NoError(t, err)
	
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Empty(t, f.repo.created)
}

func TestSendBulkEmptyRecipients(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{TemplateContent: "Hi", Channel: notification.ChannelEmail})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, result.Results)
	assert.NotEmpty(t, result.BatchID)
}

func TestSendBulkRecoversPanics(t *testing.T) {
	f := newFixture()
	f.dispatcher.panicOn = "boom@example.com"
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateContent: "Hi",
		Channel:         notification.ChannelEmail,
		Recipients: []Recipient{
			{RecipientID: "r1", Email: "boom@example.com"},
			{RecipientID: "r2", Email: "ok@example.com"},
		},
	})
	require.NoError(t, err)
	
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, "provider exploded", result.Results[0].Error)
	assert.True(t, result.Results[1].Success)
}

func TestSendBulkPersistenceFailure(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("connection reset")
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateContent: "Hi",
		Channel:         notification.ChannelEmail,
		Recipients:      []Recipient{{RecipientID: "r1", Email: "ana@example.com"}},
	})
	require.NoError(t, err)
	
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, "msg-ana@example.com", result.Results[0].MessageID)
	assert.Contains(t, result.Results[0].Error, "message delivered")
	assert.Contains(t, result.Results[0].Error, "connection reset")
}

func TestSendBulkTemplateResolution(t *testing.T) {
	templateID := uuid.NewString()
	
	testCases := []struct {
		name        string
		template    *db.EmailTemplate
		policy      TemplatePolicy
		req         BulkRequest
		wantSubject string
		wantBody    string
		wantErr     error
	}{
		{
			name:        "template overrides literal content",
			template:    &db.EmailTemplate{Subject: "Welcome {name}", HtmlBody: "<b>Hi {name}</b>"},
			req:         BulkRequest{TemplateID: templateID, TemplateContent: "literal", TemplateSubject: "literal"},
			wantSubject: "Welcome Ana",
			wantBody:    "<b>Hi Ana</b>",
		},
		{
			name:        "template with empty subject",
			template:    &db.EmailTemplate{HtmlBody: "body"},
			req:         BulkRequest{TemplateID: templateID, TemplateSubject: "literal"},
			wantSubject: "Notification",
			wantBody:    "body",
		},
		{
			name:        "missing template falls back to literal content",
			req:         BulkRequest{TemplateID: templateID, TemplateContent: "Hello {name}", TemplateSubject: "S"},
			wantSubject: "S",
			wantBody:    "Hello Ana",
		},
		{
			name:        "no subject defaults",
			req:         BulkRequest{TemplateContent: "x"},
			wantSubject: "Notification",
			wantBody:    "x",
		},
		{
			name:    "strict policy rejects missing template",
			policy:  TemplatePolicyStrict,
			req:     BulkRequest{TemplateID: templateID, TemplateContent: "Hello"},
			wantErr: ErrTemplateNotFound,
		},
	}
	
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			if tc.template != nil {
				f.templates.templates[templateID] = *tc.template
			}
			
			var opts []Option
			if tc.policy != "" {
				opts = append(opts, WithTemplatePolicy(tc.policy))
			}
			
			req := tc.req
			req.Channel = notification.ChannelEmail
			req.Recipients = []Recipient{{RecipientID: "r1", Email: "ana@example.com", Variables: map[string]string{"name": "Ana"}}}
			
			_, err := f.service(opts...).SendBulk(context.Background(), req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, f.dispatcher.sent)
				assert.Empty(t, f.publisher.events)
				return
			}
			
			require.NoError(t, err)
			require.Len(t, f.dispatcher.sent, 1)
			assert.Equal(t, tc.wantSubject, f.dispatcher.sent[0].msg.Subject)
			assert.Equal(t, tc.wantBody, f.dispatcher.sent[0].msg.Body)
		})
	}
}

func TestSendBulkTemplateLookupError(t *testing.T) {
	f := newFixture()
	f.templates.err = errors.New("db unreachable")
	
	_, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateID: uuid.NewString(),
		Channel:    notification.ChannelEmail,
		Recipients: []Recipient{{RecipientID: "r1", Email: "ana@example.com"}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTemplateNotFound)
	assert.Empty(t, f.dispatcher.sent)
}

func TestSendBulkIgnoresCancellation(t *testing.T) {
	f := newFixture()
	
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	
	result, err := f.service().SendBulk(ctx, BulkRequest{
		TemplateContent: "Hi",
		Channel:         notification.ChannelEmail,
		Recipients: []Recipient{
			{RecipientID: "r1", Email: "a@example.com"},
			{RecipientID: "r2", Email: "b@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SentCount)
	for _, ctxErr := range f.dispatcher.ctxErrs {
		assert.NoError(t, ctxErr)
	}
}

func TestSendBulkPublishesProgress(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendBulk(context.Background(), BulkRequest{
		TemplateContent: "Hi",
		Channel:         notification.ChannelEmail,
		Recipients: []Recipient{
			{RecipientID: "r1", Email: "a@example.com"},
			{RecipientID: "r2"},
		},
	})
	require.NoError(t, err)
	
	require.Len(t, f.publisher.events, 3)
	topic := event.BatchTopic(result.BatchID)
	for _, e := range f.publisher.events {
		assert.Equal(t, topic, e.Topic)
	}
	
	first := f.publisher.events[0].Data.(RecipientProgress)
	assert.Equal(t, event.EventTypeRecipientProcessed, f.publisher.events[0].Type)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, 1, first.SentCount)
	
	second := f.publisher.events[1].Data.(RecipientProgress)
	assert.Equal(t, 1, second.Failed)
	
	assert.Equal(t, event.EventTypeBatchCompleted, f.publisher.events[2].Type)
	assert.Equal(t, result, f.publisher.events[2].Data)
}

func TestSendToAll(t *testing.T) {
	f := newFixture()
	phone := "254712345678"
	f.recipients.recipients = []db.Recipient{
		{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"},
		{ID: uuid.New(), Name: "Ben", Email: "ben@example.com", Phone: &phone},
	}
	
	result, err := f.service().SendToAll(context.Background(), BulkRequest{
		TemplateContent: "Hi {team}",
		Channel:         notification.ChannelSMS,
		Variables:       map[string]string{"team": "Ops"},
	})
	require.NoError(t, err)
	
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, f.recipients.recipients[0].ID.String(), result.Results[0].RecipientID)
	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, "Hi Ops", f.dispatcher.sent[0].msg.Body)
	assert.Equal(t, phone, f.dispatcher.sent[0].contact.Phone)
}

func TestSendToAllErrors(t *testing.T) {
	f := newFixture()
	_, err := f.service().SendToAll(context.Background(), BulkRequest{TemplateContent: "x", Channel: notification.ChannelEmail})
	require.ErrorIs(t, err, ErrNoRecipients)
	
	f.recipients.err = errors.New("db down")
	_, err = f.service().SendToAll(context.Background(), BulkRequest{TemplateContent: "x", Channel: notification.ChannelEmail})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestRecipientsFromCSV(t *testing.T) {
	recipients := RecipientsFromCSV([]CSVRow{
		{ID: "emp-1", Email: "a@example.com", Variables: map[string]string{"name": "A"}},
		{Phone: "254700000000"},
	})
	
	require.Len(t, recipients, 2)
	assert.Equal(t, "emp-1", recipients[0].RecipientID)
	assert.Equal(t, "A", recipients[0].Variables["name"])
	assert.True(t, strings.HasPrefix(recipients[1].RecipientID, "csv-"))
	assert.Len(t, recipients[1].RecipientID, len("csv-")+9)
	assert.NotNil(t, recipients[1].Variables)
}

func TestSendWithChannel(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendWithChannel(context.Background(), SingleRequest{
		RecipientID:    "r1",
		Content:        "Your order shipped",
		Category:       "orders",
		Channel:        notification.ChannelEmail,
		RecipientEmail: "ana@example.com",
	})
	require.NoError(t, err)
	
	assert.True(t, result.Outcome.Success)
	assert.Equal(t, notification.StatusSent, result.Notification.Status())
	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, "Notification", f.dispatcher.sent[0].msg.Subject)
	
	// created as pending, then saved with the final status
	require.Len(t, f.repo.created, 1)
	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, result.Notification.ID(), f.repo.saved[0].ID())
}

func TestSendWithChannelFailure(t *testing.T) {
	f := newFixture()
	
	result, err := f.service().SendWithChannel(context.Background(), SingleRequest{
		RecipientID: "r1",
		Content:     "Hi",
		Category:    "alerts",
		Channel:     notification.ChannelSMS,
	})
	require.NoError(t, err)
	
	assert.False(t, result.Outcome.Success)
	assert.Equal(t, "No sms contact information", result.Outcome.Error)
	assert.Equal(t, notification.StatusFailed, result.Notification.Status())
	require.Len(t, f.repo.saved, 1)
}

func TestSendWithChannelValidation(t *testing.T) {
	f := newFixture()
	
	_, err := f.service().SendWithChannel(context.Background(), SingleRequest{Content: "Hi", Category: "x"})
	require.ErrorIs(t, err, notification.ErrMissingRecipient)
	assert.Empty(t, f.repo.created)
}
