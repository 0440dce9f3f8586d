package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSMTPClient struct {
	sent []*mail.Msg
	err  error
}

func (c *fakeSMTPClient) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, messages...)
	return nil
}

func newTestSender(client smtpClient) *SMTPSender {
	return &SMTPSender{
		client: client,
		config: Config{
			Host:        "smtp.example.com",
			Port:        465,
			Username:    "noreply@example.com",
			FromName:    "Notify Admin",
			FromAddress: "noreply@example.com",
		},
	}
}

func TestSendEmail(t *testing.T) {
	client := &fakeSMTPClient{}
	sender := newTestSender(client)
	
	messageID, err := sender.SendEmail(context.Background(), "ann@example.com", "Welcome", "<p>Hi</p>", "Hi")
	require.NoError(t, err)
	
	assert.True(t, strings.HasPrefix(messageID, "<"))
	assert.True(t, strings.HasSuffix(messageID, "@smtp.example.com>"))
	
	require.Len(t, client.sent, 1)
	recipients, err := client.sent[0].GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ann@example.com"}, recipients)
	assert.Equal(t, []string{"Welcome"}, client.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSendEmailWithoutRecipient(t *testing.T) {
	client := &fakeSMTPClient{}
	
	_, err := newTestSender(client).SendEmail(context.Background(), "", "Welcome", "<p>Hi</p>", "")
	assert.ErrorIs(t, err, ErrNoRecipient)
	assert.Empty(t, client.sent)
}

func TestSendEmailInvalidAddress(t *testing.T) {
	_, err := newTestSender(&fakeSMTPClient{}).SendEmail(context.Background(), "not an address", "Welcome", "Hi", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set To address")
}

func TestSendEmailRelayFailure(t *testing.T) {
	relayErr := errors.New("535 authentication failed")
	
	_, err := newTestSender(&fakeSMTPClient{err: relayErr}).SendEmail(context.Background(), "ann@example.com", "Welcome", "Hi", "")
	assert.ErrorIs(t, err, relayErr)
}
