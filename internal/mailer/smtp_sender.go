package mailer

import (
	"context"
	"errors"
	"fmt"
	
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

var ErrNoRecipient = errors.New("recipient email address is required")

// Config holds the SMTP relay settings.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	UseSSL      bool
}

// smtpClient is the part of *mail.Client the sender needs.
type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type SMTPSender struct {
	client smtpClient
	config Config
}

func NewSMTPSender(config Config) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.Username),
		mail.WithPassword(config.Password),
	}
	if config.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	
	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	
	return &SMTPSender{
		client: client,
		config: config,
	}, nil
}

// SendEmail delivers one message and returns the Message-ID it was sent with.
// textBody is attached as a plain text alternative when it is not empty.
func (sender *SMTPSender) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) (messageID string, err error) {
	if to == "" {
		return "", ErrNoRecipient
	}
	
	msg, messageID, err := sender.buildMessage(to, subject, htmlBody, textBody)
	if err != nil {
		return "", err
	}
	
	if err = sender.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	
	return messageID, nil
}

func (sender *SMTPSender) buildMessage(to, subject, htmlBody, textBody string) (*mail.Msg, string, error) {
	msg := mail.NewMsg()
	
	fromAddress := sender.config.FromAddress
	if fromAddress == "" {
		fromAddress = sender.config.Username
	}
	if err := msg.FromFormat(sender.config.FromName, fromAddress); err != nil {
		return nil, "", fmt.Errorf("failed to set From address: %w", err)
	}
	
	if err := msg.To(to); err != nil {
		return nil, "", fmt.Errorf("failed to set To address: %w", err)
	}
	
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	if textBody != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, textBody)
	}
	
	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), sender.config.Host)
	msg.SetMessageIDWithValue(messageID)
	
	return msg, "<" + messageID + ">", nil
}
