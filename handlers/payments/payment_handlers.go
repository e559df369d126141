package payments

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"twinclash-api/services"
	"twinclash-api/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	stripeTimeout = 30 * time.Second

	// Stripe webhook payloads are small; bound reads anyway
	maxWebhookBody = 1 << 16
)

// Checkout opens a Stripe hosted checkout session for a coin package
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidPackage, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), stripeTimeout)
	defer cancel()

	sess, err := h.payments.CreateCheckout(ctx, req.PackageID, req.ClientID)
	switch {
	case errors.Is(err, services.ErrInvalidClientID):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidClientID, "Invalid client id")
	case errors.Is(err, services.ErrInvalidPackage):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidPackage, "Unknown coin package")
	case err != nil:
		log.Printf("[payments] checkout failed: %v", err)
		response.ErrorCode(c, http.StatusBadGateway, CodeInternalError, "Could not create checkout session")
	default:
		c.JSON(http.StatusOK, sess)
	}
}

// Webhook receives Stripe event deliveries. The signature is verified against
// the raw body before anything is trusted.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInternalError, "Could not read body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), stripeTimeout)
	defer cancel()

	err = h.payments.HandleWebhook(ctx, payload, c.GetHeader("Stripe-Signature"))
	if errors.Is(err, services.ErrInvalidSignature) {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidSignature, "Invalid webhook signature")
		return
	}
	if err != nil {
		// Non-2xx makes Stripe redeliver; settlement is idempotent so that is safe
		log.Printf("[payments] webhook processing failed: %v", err)
		response.ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "Webhook processing failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Verify lets the client poll a session after returning from Stripe
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeNotFound, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), stripeTimeout)
	defer cancel()

	result, err := h.payments.VerifyPayment(ctx, req.SessionID, req.ClientID)
	if errors.Is(err, services.ErrTransactionNotFound) {
		response.ErrorCode(c, http.StatusNotFound, CodeNotFound, "Unknown checkout session")
		return
	}
	if err != nil {
		log.Printf("[payments] verify failed: %v", err)
		response.ErrorCode(c, http.StatusBadGateway, CodeInternalError, "Could not verify payment")
		return
	}
	c.JSON(http.StatusOK, result)
}
