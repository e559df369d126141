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

const onesignalNotificationsURL = "https://onesignal.com/api/v1/notifications"

// OneSignalClient talks to the OneSignal REST API. It carries only the one
// call the game needs: the daily come-back reminder to all subscribed users.
type OneSignalClient struct {
	appID      string
	apiKey     string
	siteURL    string
	baseURL    string
	httpClient *http.Client
}

func NewOneSignalClient(appID, apiKey, siteURL string) *OneSignalClient {
	return &OneSignalClient{
		appID:      appID,
		apiKey:     apiKey,
		siteURL:    siteURL,
		baseURL:    onesignalNotificationsURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type onesignalRequest struct {
	AppID            string            `json:"app_id"`
	IncludedSegments []string          `json:"included_segments"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	URL              string            `json:"url"`
}

type onesignalResponse struct {
	ID         string      `json:"id"`
	Recipients int         `json:"recipients"`
	Errors     interface{} `json:"errors"`
}

// SendDailyReminder pushes the fixed Spanish come-back notification to every
// subscribed user and returns the recipient count OneSignal reports.
func (c *OneSignalClient) SendDailyReminder(ctx context.Context) (int, error) {
	if c.appID == "" || c.apiKey == "" {
		return 0, fmt.Errorf("onesignal: app id or api key not configured")
	}

	payload, err := json.Marshal(onesignalRequest{
		AppID:            c.appID,
		IncludedSegments: []string{"Subscribed Users"},
		Headings:         map[string]string{"en": "🔥 Vuelve a jugar a TwinClash"},
		Contents:         map[string]string{"en": "Hay nuevos retos esperándote. Pon a prueba tu memoria hoy ⚡"},
		URL:              c.siteURL,
	})
	if err != nil {
		return 0, fmt.Errorf("onesignal: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("onesignal: http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("onesignal: read: %w", err)
	}

	var out onesignalResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("onesignal: unmarshal: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("onesignal: status %d: %v", resp.StatusCode, out.Errors)
	}

	return out.Recipients, nil
}
