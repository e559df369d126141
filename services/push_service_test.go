package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChunkTokens(t *testing.T) {
	tokens := make([]string, 1250)
	for i := range tokens {
		tokens[i] = "t"
	}

	chunks := chunkTokens(tokens, 500)
	if len(chunks) != 3 {
		t.Fatalf("want 3 chunks for 1250 tokens, got %d", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 250 {
		t.Fatalf("unexpected chunk sizes %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	if got := chunkTokens(nil, 500); len(got) != 0 {
		t.Fatalf("want no chunks for no tokens, got %d", len(got))
	}
	if got := chunkTokens([]string{"a", "b"}, 500); len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("small input should stay in one chunk, got %v", got)
	}
}

func TestFCMClient_SendMulticast(t *testing.T) {
	var gotAuth string
	var gotReq fcmRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": 2,
			"failure": 2,
			"results": []map[string]string{
				{},
				{"error": "NotRegistered"},
				{"error": "InvalidRegistration"},
				{},
			},
		})
	}))
	defer srv.Close()

	client := NewFCMClient("server-key")
	client.baseURL = srv.URL

	tokens := []string{"tok-a", "tok-b", "tok-c", "tok-d"}
	res, err := client.SendMulticast(context.Background(), tokens, Notification{Title: "hi", Body: "there", URL: "https://example.org"})
	if err != nil {
		t.Fatalf("SendMulticast failed: %v", err)
	}

	if gotAuth != "key=server-key" {
		t.Fatalf("want key auth header, got %q", gotAuth)
	}
	if len(gotReq.RegistrationIDs) != 4 {
		t.Fatalf("want 4 registration ids, got %d", len(gotReq.RegistrationIDs))
	}
	if gotReq.Notification.Title != "hi" || gotReq.Notification.ClickAction != "https://example.org" {
		t.Fatalf("unexpected notification payload %+v", gotReq.Notification)
	}
	if res.Success != 2 || res.Failure != 2 {
		t.Fatalf("want 2/2 success/failure, got %d/%d", res.Success, res.Failure)
	}
	if len(res.InvalidTokens) != 2 || res.InvalidTokens[0] != "tok-b" || res.InvalidTokens[1] != "tok-c" {
		t.Fatalf("want tok-b and tok-c flagged invalid, got %v", res.InvalidTokens)
	}
}

func TestFCMClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewFCMClient("bad-key")
	client.baseURL = srv.URL

	if _, err := client.SendMulticast(context.Background(), []string{"tok"}, Notification{}); err == nil {
		t.Fatal("want an error for a non-200 response")
	}
}

func TestFCMClient_RequiresServerKey(t *testing.T) {
	client := NewFCMClient("")
	if _, err := client.SendMulticast(context.Background(), []string{"tok"}, Notification{}); err == nil {
		t.Fatal("want an error when the server key is missing")
	}
}

func TestOneSignalClient_SendDailyReminder(t *testing.T) {
	var gotAuth string
	var gotReq onesignalRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "n-1", "recipients": 321})
	}))
	defer srv.Close()

	client := NewOneSignalClient("app-id", "api-key", "https://twinclash.example")
	client.baseURL = srv.URL

	recipients, err := client.SendDailyReminder(context.Background())
	if err != nil {
		t.Fatalf("SendDailyReminder failed: %v", err)
	}
	if recipients != 321 {
		t.Fatalf("want 321 recipients, got %d", recipients)
	}
	if gotAuth != "Basic api-key" {
		t.Fatalf("want basic auth header, got %q", gotAuth)
	}
	if gotReq.AppID != "app-id" || gotReq.URL != "https://twinclash.example" {
		t.Fatalf("unexpected request %+v", gotReq)
	}
	if len(gotReq.IncludedSegments) != 1 || gotReq.IncludedSegments[0] != "Subscribed Users" {
		t.Fatalf("want the subscribed-users segment, got %v", gotReq.IncludedSegments)
	}
	if gotReq.Headings["en"] == "" || gotReq.Contents["en"] == "" {
		t.Fatal("reminder payload must carry heading and content")
	}
}

func TestOneSignalClient_RequiresCredentials(t *testing.T) {
	client := NewOneSignalClient("", "", "https://twinclash.example")
	if _, err := client.SendDailyReminder(context.Background()); err == nil {
		t.Fatal("want an error when credentials are missing")
	}
}
