package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"twinclash-api/config"
	"twinclash-api/metrics"
	"twinclash-api/models"
	"twinclash-api/store"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

var (
	ErrInvalidPackage      = errors.New("unknown coin package")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// CheckoutSession is what the client needs to redirect to Stripe
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// VerifyResult reports the outcome of a checkout session plus the client's
// balance after any credit was applied
type VerifyResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Coins   int64  `json:"coins"`
}

// PaymentService sells coin packages through Stripe hosted checkout and
// credits coins when the webhook confirms payment
type PaymentService struct {
	store    store.EconomyStore
	profiles *ProfileService

	webhookSecret string
	clientURL     string
}

func NewPaymentService(st store.EconomyStore, profiles *ProfileService) *PaymentService {
	stripe.Key = config.StripeSecretKey
	return &PaymentService{
		store:         st,
		profiles:      profiles,
		webhookSecret: config.StripeWebhookSecret,
		clientURL:     config.ClientUrl,
	}
}

// PackageByID looks up a purchasable coin package
func (s *PaymentService) PackageByID(ctx context.Context, packageID string) (*models.CoinPackage, error) {
	pkg, err := s.store.PackageByID(ctx, packageID)
	if errors.Is(err, store.ErrPackageNotFound) {
		return nil, ErrInvalidPackage
	}
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// CreateCheckout opens a Stripe hosted checkout session for a coin package
// and records a pending transaction keyed on the session id
func (s *PaymentService) CreateCheckout(ctx context.Context, packageID, clientID string) (*CheckoutSession, error) {
	if !validClientID(clientID) {
		return nil, ErrInvalidClientID
	}
	pkg, err := s.PackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(clientID),
		SuccessURL:        stripe.String(s.clientURL + "/?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.clientURL + "/?payment=cancelled"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyEUR)),
					UnitAmount: stripe.Int64(pkg.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(pkg.Name),
					},
				},
			},
		},
	}
	params.AddMetadata("package_id", pkg.PackageID)
	params.AddMetadata("coins", strconv.FormatInt(pkg.Coins, 10))
	params.AddMetadata("client_id", clientID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	err = s.store.InsertPendingTransaction(ctx, &models.Transaction{
		SessionID:   sess.ID,
		ClientID:    clientID,
		PackageID:   pkg.PackageID,
		Coins:       pkg.Coins,
		AmountCents: pkg.PriceCents,
		Status:      models.TransactionPending,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// HandleWebhook verifies and processes a Stripe webhook delivery. Coins are
// credited exactly once per session regardless of redelivery.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return ErrInvalidSignature
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decoding checkout session: %w", err)
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		log.Printf("[payments] session %s completed without payment (status %s)", sess.ID, sess.PaymentStatus)
		return nil
	}

	clientID := sess.ClientReferenceID
	if clientID == "" {
		clientID = sess.Metadata["client_id"]
	}
	coins, err := strconv.ParseInt(sess.Metadata["coins"], 10, 64)
	if err != nil || coins <= 0 || clientID == "" {
		return fmt.Errorf("session %s carries no usable metadata", sess.ID)
	}

	return s.settle(ctx, sess.ID, clientID, sess.Metadata["package_id"], coins, string(sess.PaymentStatus))
}

// settle marks the transaction completed and credits the coins. The guarded
// flip makes the credit single-shot: a redelivered webhook finds no row left
// to flip and stops there.
func (s *PaymentService) settle(ctx context.Context, sessionID, clientID, packageID string, coins int64, paymentStatus string) error {
	err := s.store.InsertPendingTransaction(ctx, &models.Transaction{
		SessionID: sessionID,
		ClientID:  clientID,
		PackageID: packageID,
		Coins:     coins,
		Status:    models.TransactionPending,
	})
	if err != nil {
		return err
	}

	flipped, err := s.store.CompleteTransaction(ctx, sessionID, paymentStatus)
	if err != nil {
		return err
	}
	if !flipped {
		return nil
	}

	if _, err := s.profiles.CreditCoins(ctx, clientID, coins); err != nil {
		return fmt.Errorf("crediting %d coins to %s: %w", coins, clientID, err)
	}
	metrics.PaymentsCompleted.Inc()
	log.Printf("[payments] credited %d coins to %s for session %s", coins, clientID, sessionID)
	return nil
}

// VerifyPayment lets the client poll a session after returning from Stripe.
// It settles the session if the webhook has not arrived yet.
func (s *PaymentService) VerifyPayment(ctx context.Context, sessionID, clientID string) (*VerifyResult, error) {
	tx, err := s.store.GetTransaction(ctx, sessionID)
	if errors.Is(err, store.ErrTransactionNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	if clientID != "" && tx.ClientID != clientID {
		return nil, ErrTransactionNotFound
	}

	if tx.Status != models.TransactionCompleted {
		sess, err := session.Get(sessionID, nil)
		if err != nil {
			return nil, fmt.Errorf("fetching checkout session: %w", err)
		}
		if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			if err := s.settle(ctx, sessionID, tx.ClientID, tx.PackageID, tx.Coins, string(sess.PaymentStatus)); err != nil {
				return nil, err
			}
			tx.Status = models.TransactionCompleted
		}
	}

	profile, err := s.profiles.GetOrCreate(ctx, tx.ClientID)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{
		Success: tx.Status == models.TransactionCompleted,
		Status:  tx.Status,
		Coins:   profile.Coins,
	}, nil
}
