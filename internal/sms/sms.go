package sms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	
	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const (
	DefaultBaseURL  = "https://api.textsms.co.ke/api/v3"
	DefaultSenderID = "BIRDVIEW"
	
	successResponseCode = 200
)

var ErrNoRecipient = errors.New("recipient phone number is required")

// Config holds the TextSMS gateway settings.
type Config struct {
	BaseURL   string
	APIKey    string
	PartnerID string
	SenderID  string
	Timeout   time.Duration
}

// Client talks to the TextSMS HTTP gateway.
type Client struct {
	http   *resty.Client
	config Config
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.SenderID == "" {
		config.SenderID = DefaultSenderID
	}
	
	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetAuthToken(config.APIKey).
		SetHeader("Content-Type", "application/json")
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	
	return &Client{
		http:   client,
		config: config,
	}
}

type sendSMSRequest struct {
	SenderID  string `json:"sender_id"`
	To        string `json:"to"`
	Message   string `json:"message"`
	PartnerID string `json:"partner_id"`
}

type sendSMSResponse struct {
	Responses []struct {
		Code        int         `json:"response-code"`
		Description string      `json:"response-description"`
		Mobile      looseString `json:"mobile"`
		MessageID   looseString `json:"messageid"`
	} `json:"responses"`
}

// looseString accepts both JSON strings and numbers.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	*s = looseString(strings.Trim(string(data), `"`))
	return nil
}

// SendSMS sends one text message and returns the gateway's message id, if any.
func (c *Client) SendSMS(ctx context.Context, to, message string) (messageID string, err error) {
	if to == "" {
		return "", ErrNoRecipient
	}
	
	var result sendSMSResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendSMSRequest{
			SenderID:  c.config.SenderID,
			To:        to,
			Message:   message,
			PartnerID: c.config.PartnerID,
		}).
		SetResult(&result).
		Post("/sendsms")
	if err != nil {
		return "", fmt.Errorf("failed to send sms: %w", err)
	}
	
	if resp.IsError() {
		return "", fmt.Errorf("sms gateway error: status code %d, body: %s", resp.StatusCode(), resp.String())
	}
	
	if len(result.Responses) > 0 {
		first := result.Responses[0]
		if first.Code != 0 && first.Code != successResponseCode {
			return "", fmt.Errorf("sms gateway rejected message: %s (code %d)", first.Description, first.Code)
		}
		messageID = string(first.MessageID)
	}
	
	log.Debug().Str("message_id", messageID).Msg("sms accepted by gateway")
	return messageID, nil
}

// Balance is the remaining credit reported by the gateway.
type Balance struct {
	Credit float64        `json:"credit"`
	Raw    map[string]any `json:"raw"`
}

func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	var raw map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&raw).
		Get("/balance")
	if err != nil {
		return nil, fmt.Errorf("failed to get sms balance: %w", err)
	}
	
	if resp.IsError() {
		return nil, fmt.Errorf("sms gateway error: status code %d, body: %s", resp.StatusCode(), resp.String())
	}
	
	balance := &Balance{Raw: raw}
	switch credit := raw["credit"].(type) {
	case float64:
		balance.Credit = credit
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(credit), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sms credit %q: %w", credit, err)
		}
		balance.Credit = value
	default:
		return nil, fmt.Errorf("sms gateway returned no credit: %s", resp.String())
	}
	
	return balance, nil
}

func (c *Client) Close() error {
	return c.http.Close()
}
