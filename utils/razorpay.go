package utils

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const razorpayBaseURL = "https://api.razorpay.com"

// RazorpayClient talks to the Razorpay orders API and verifies checkout
// callback signatures. The key secret is held server-side only and never
// appears in responses or logs.
type RazorpayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *resty.Client
}

// NewRazorpayClient builds a client from RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET.
func NewRazorpayClient() (*RazorpayClient, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = razorpayBaseURL
	}
	return NewRazorpayClientWith(baseURL, keyID, keySecret), nil
}

// NewRazorpayClientWith builds a client against an explicit base URL. Tests
// point this at an httptest server.
func NewRazorpayClientWith(baseURL, keyID, keySecret string) *RazorpayClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(keyID, keySecret).
		SetTimeout(15 * time.Second)
	return &RazorpayClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      client,
	}
}

// KeyID returns the public key id the checkout widget needs.
func (c *RazorpayClient) KeyID() string { return c.keyID }

// RazorpayOrder is the gateway-side reservation of an amount prior to
// capture. Amount is in minor units (paise).
type RazorpayOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayAPIError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates a gateway order. amountMinor is already in the
// gateway's minor unit (paise); callers multiply major units by 100 before
// calling. Amounts below 100 paise are rejected up front with
// ErrInvalidAmount.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*RazorpayOrder, error) {
	if amountMinor < 100 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = "INR"
	}

	receipt := "rcpt_" + uuid.NewString()

	var order RazorpayOrder
	var apiErr razorpayAPIError
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amountMinor,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		SetError(&apiErr).
		Post("/v1/orders")
	if err != nil {
		log.Printf("[razorpay] order request failed: %v", err)
		return nil, &GatewayError{Message: "could not reach payment gateway", Err: err}
	}
	if resp.IsError() {
		log.Printf("[razorpay] order rejected: status=%s code=%s desc=%s",
			resp.Status(), apiErr.Error.Code, apiErr.Error.Description)
		return nil, &GatewayError{Status: resp.StatusCode(), Message: apiErr.Error.Description}
	}
	if order.OrderID == "" {
		return nil, &GatewayError{Status: resp.StatusCode(), Message: "gateway returned no order id"}
	}
	return &order, nil
}

// SignPayment computes the hex HMAC-SHA256 digest over order_id|payment_id
// with the key secret. This is the signature the gateway attaches to a
// successful checkout callback.
func (c *RazorpayClient) SignPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature recomputes the digest and compares it with the
// supplied signature using hmac.Equal. A forged signature never verifies.
func (c *RazorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := c.SignPayment(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPayment is the error-returning form: a mismatch signals
// ErrSignatureMismatch.
func (c *RazorpayClient) VerifyPayment(orderID, paymentID, signature string) error {
	if !c.VerifyPaymentSignature(orderID, paymentID, signature) {
		return ErrSignatureMismatch
	}
	return nil
}
