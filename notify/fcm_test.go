package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticTokens []string

func (s staticTokens) AdminFCMTokens(context.Context) ([]string, error) { return s, nil }

func TestFCMSenderSendTo(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key=secret", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewFCMSender(srv.URL, "secret")
	err := s.SendTo(context.Background(), "tok1", "Título", "Corpo")
	assert.NoError(t, err)
	assert.Equal(t, "tok1", got["to"])
}

func TestFCMSenderErrors(t *testing.T) {
	s := NewFCMSender("http://example.invalid", "")
	err := s.SendTo(context.Background(), "tok", "a", "b")
	assert.True(t, errors.Is(err, ErrNotConfigured))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s = NewFCMSender(srv.URL, "secret")
	assert.Error(t, s.SendTo(context.Background(), "tok", "a", "b"))
}

func TestAdminBroadcastCounts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["to"] == "bad-token" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := &AdminBroadcast{
		Tokens: staticTokens{"tok1", "bad-token", "tok2"},
		Sender: NewFCMSender(srv.URL, "secret"),
	}
	sent, failed, err := b.Broadcast(context.Background(), "Título", "Corpo")
	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, calls)
}

func TestAdminBroadcastNotConfigured(t *testing.T) {
	b := &AdminBroadcast{Tokens: staticTokens{"tok1"}, Sender: NewFCMSender("", "")}
	_, _, err := b.Broadcast(context.Background(), "a", "b")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
