package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	
	client := NewClient(Config{
		BaseURL:   server.URL,
		APIKey:    "secret",
		PartnerID: "42",
	})
	t.Cleanup(func() { _ = client.Close() })
	
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestSendSMS(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sendsms", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		
		var req sendSMSRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultSenderID, req.SenderID)
		assert.Equal(t, "254700000001", req.To)
		assert.Equal(t, "Hi Ann", req.Message)
		assert.Equal(t, "42", req.PartnerID)
		
		writeJSON(w, http.StatusOK, map[string]any{
			"responses": []map[string]any{
				{"response-code": 200, "response-description": "Success", "mobile": 254700000001, "messageid": 8290842},
			},
		})
	})
	
	messageID, err := client.SendSMS(context.Background(), "254700000001", "Hi Ann")
	require.NoError(t, err)
	assert.Equal(t, "8290842", messageID)
}

func TestSendSMSRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"responses": []map[string]any{
				{"response-code": 1004, "response-description": "Low bulk credits"},
			},
		})
	})
	
	_, err := client.SendSMS(context.Background(), "254700000001", "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Low bulk credits")
}

func TestSendSMSHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid api key"})
	})
	
	_, err := client.SendSMS(context.Background(), "254700000001", "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 401")
}

func TestSendSMSWithoutRecipient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway must not be called")
	})
	
	_, err := client.SendSMS(context.Background(), "", "Hi")
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestGetBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/balance", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"credit": "1520.50", "partner-id": "42"})
	})
	
	balance, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1520.50, balance.Credit, 0.001)
	assert.Equal(t, "42", balance.Raw["partner-id"])
}

func TestGetBalanceInvalidCredit(t *testing.T) {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "Unparseable", body: map[string]any{"credit": "n/a"}},
		{name: "Missing", body: map[string]any{"partner-id": "42"}},
	}
	
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tc.body)
			})
			
			balance, err := client.GetBalance(context.Background())
			require.Error(t, err)
			assert.Nil(t, balance)
		})
	}
}
