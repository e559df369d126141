package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"twinclash-api/models"
	"twinclash-api/store"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test"

func newTestPayments() (*PaymentService, *ProfileService) {
	st := store.NewMemoryEconomyStore()
	profiles := NewProfileService(st)
	payments := &PaymentService{
		store:         st,
		profiles:      profiles,
		webhookSecret: testWebhookSecret,
		clientURL:     "https://twinclash.example",
	}
	return payments, profiles
}

// completedSessionPayload builds a checkout.session.completed event body the
// way Stripe delivers it
func completedSessionPayload(sessionID, clientID string, coins int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": %q,
			"client_reference_id": %q,
			"payment_status": "paid",
			"metadata": {"coins": "%d", "package_id": "medium", "client_id": %q}
		}}
	}`, stripe.APIVersion, sessionID, clientID, coins, clientID))
}

func signedHeader(payload []byte) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, testWebhookSecret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func TestPackageByID(t *testing.T) {
	payments, _ := newTestPayments()
	ctx := context.Background()

	pkg, err := payments.PackageByID(ctx, "medium")
	if err != nil {
		t.Fatalf("PackageByID failed: %v", err)
	}
	if pkg.Coins != 550 || pkg.PriceCents != 399 {
		t.Fatalf("want medium package 550 coins at 399 cents, got %d at %d", pkg.Coins, pkg.PriceCents)
	}

	if _, err := payments.PackageByID(ctx, "nope"); !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("want ErrInvalidPackage for unknown package, got %v", err)
	}
}

func TestSettle_CreditsExactlyOnce(t *testing.T) {
	payments, profiles := newTestPayments()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := payments.settle(ctx, "cs_test_1", "client-a", "medium", 550, "paid"); err != nil {
			t.Fatalf("settle attempt %d failed: %v", i+1, err)
		}
	}

	profile, err := profiles.GetOrCreate(ctx, "client-a")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if profile.Coins != 550 {
		t.Fatalf("want 550 coins after repeated settles, got %d", profile.Coins)
	}
}

func TestHandleWebhook_RedeliveryCreditsOnce(t *testing.T) {
	payments, profiles := newTestPayments()
	ctx := context.Background()

	payload := completedSessionPayload("cs_test_2", "client-a", 550)
	for i := 0; i < 2; i++ {
		if err := payments.HandleWebhook(ctx, payload, signedHeader(payload)); err != nil {
			t.Fatalf("delivery %d failed: %v", i+1, err)
		}
	}

	profile, err := profiles.GetOrCreate(ctx, "client-a")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if profile.Coins != 550 {
		t.Fatalf("want 550 coins after a redelivered webhook, got %d", profile.Coins)
	}
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	payments, _ := newTestPayments()

	payload := completedSessionPayload("cs_test_3", "client-a", 550)
	err := payments.HandleWebhook(context.Background(), payload, "t=0,v1=deadbeef")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("want ErrInvalidSignature, got %v", err)
	}
}

func TestHandleWebhook_IgnoresOtherEventTypes(t *testing.T) {
	payments, profiles := newTestPayments()
	ctx := context.Background()

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"api_version": %q,
		"type": "payment_intent.created",
		"data": {"object": {}}
	}`, stripe.APIVersion))
	if err := payments.HandleWebhook(ctx, payload, signedHeader(payload)); err != nil {
		t.Fatalf("HandleWebhook failed: %v", err)
	}

	profile, err := profiles.GetOrCreate(ctx, "client-a")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if profile.Coins != 0 {
		t.Fatalf("want no credit from an unrelated event, got %d coins", profile.Coins)
	}
}

func TestVerifyPayment_CompletedSession(t *testing.T) {
	payments, _ := newTestPayments()
	ctx := context.Background()

	if err := payments.settle(ctx, "cs_test_4", "client-a", "medium", 550, "paid"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	result, err := payments.VerifyPayment(ctx, "cs_test_4", "client-a")
	if err != nil {
		t.Fatalf("VerifyPayment failed: %v", err)
	}
	if !result.Success || result.Status != models.TransactionCompleted {
		t.Fatalf("want completed result, got %+v", result)
	}
	if result.Coins != 550 {
		t.Fatalf("want 550 coins reported, got %d", result.Coins)
	}
}

func TestVerifyPayment_UnknownOrForeignSession(t *testing.T) {
	payments, _ := newTestPayments()
	ctx := context.Background()

	if _, err := payments.VerifyPayment(ctx, "cs_missing", "client-a"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("want ErrTransactionNotFound for unknown session, got %v", err)
	}

	if err := payments.settle(ctx, "cs_test_5", "client-a", "medium", 550, "paid"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if _, err := payments.VerifyPayment(ctx, "cs_test_5", "client-b"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("want ErrTransactionNotFound for another client's session, got %v", err)
	}
}
