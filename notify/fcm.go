package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured means the sender has no server key and cannot deliver.
var ErrNotConfigured = errors.New("push sender not configured")

// Notifier delivers one notification somewhere. Delivery is best-effort
// everywhere in this package: errors are logged or queued, never propagated
// into ledger operations.
type Notifier interface {
	Send(ctx context.Context, title, body string) error
}

// TokenLister yields the device tokens notifications fan out to.
type TokenLister interface {
	AdminFCMTokens(ctx context.Context) ([]string, error)
}

// FCMSender posts legacy FCM messages over HTTP.
type FCMSender struct {
	Endpoint  string
	ServerKey string
	Client    *http.Client
}

func NewFCMSender(endpoint, serverKey string) *FCMSender {
	if endpoint == "" {
		endpoint = "https://fcm.googleapis.com/fcm/send"
	}
	return &FCMSender{
		Endpoint:  endpoint,
		ServerKey: serverKey,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *FCMSender) Configured() bool { return s.ServerKey != "" }

// SendTo pushes one notification to one device token.
func (s *FCMSender) SendTo(ctx context.Context, token, title, body string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	payload := map[string]any{
		"to": token,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.ServerKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm send: status %d", resp.StatusCode)
	}
	return nil
}

// AdminBroadcast fans a notification out to every administrator's token.
type AdminBroadcast struct {
	Tokens TokenLister
	Sender *FCMSender
}

// Broadcast sends to all admin tokens and counts outcomes. The error is
// non-nil only for misconfiguration or a token lookup failure; individual
// delivery failures just raise failureCount.
func (a *AdminBroadcast) Broadcast(ctx context.Context, title, body string) (sent, failed int, err error) {
	if !a.Sender.Configured() {
		return 0, 0, ErrNotConfigured
	}
	tokens, err := a.Tokens.AdminFCMTokens(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, t := range tokens {
		if err := a.Sender.SendTo(ctx, t, title, body); err != nil {
			failed++
			continue
		}
		sent++
	}
	return sent, failed, nil
}

// Send implements Notifier for the bridge poller.
func (a *AdminBroadcast) Send(ctx context.Context, title, body string) error {
	_, failed, err := a.Broadcast(ctx, title, body)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("fcm broadcast: %d deliveries failed", failed)
	}
	return nil
}
