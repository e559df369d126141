package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// Notification is the provider-neutral push payload
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// MulticastResult summarizes one batched delivery
type MulticastResult struct {
	Success       int
	Failure       int
	InvalidTokens []string
}

// FCMClient talks to the Firebase Cloud Messaging HTTP API
type FCMClient struct {
	serverKey  string
	baseURL    string
	httpClient *http.Client
}

func NewFCMClient(serverKey string) *FCMClient {
	return &FCMClient{
		serverKey:  serverKey,
		baseURL:    fcmSendURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type fcmRequest struct {
	RegistrationIDs []string        `json:"registration_ids"`
	Notification    fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	ClickAction string `json:"click_action,omitempty"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// SendMulticast delivers one notification to up to a batch of tokens. Tokens
// the provider reports as invalid or unregistered are returned so the caller
// can prune them.
func (c *FCMClient) SendMulticast(ctx context.Context, tokens []string, n Notification) (*MulticastResult, error) {
	if c.serverKey == "" {
		return nil, fmt.Errorf("fcm: server key not configured")
	}

	payload, err := json.Marshal(fcmRequest{
		RegistrationIDs: tokens,
		Notification: fcmNotification{
			Title:       n.Title,
			Body:        n.Body,
			ClickAction: n.URL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fcm: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fcm: http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fcm: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fcm: status %d: %s", resp.StatusCode, string(body))
	}

	var out fcmResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("fcm: unmarshal: %w", err)
	}

	result := &MulticastResult{Success: out.Success, Failure: out.Failure}
	for i, r := range out.Results {
		if i >= len(tokens) {
			break
		}
		if r.Error == "InvalidRegistration" || r.Error == "NotRegistered" {
			result.InvalidTokens = append(result.InvalidTokens, tokens[i])
		}
	}
	return result, nil
}
