package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/SanskrutiSakharkar/DonateMateProject/utils"
)

type PaymentController struct {
	Gateway *utils.RazorpayClient
}

func NewPaymentController(gateway *utils.RazorpayClient) *PaymentController {
	return &PaymentController{Gateway: gateway}
}

type createOrderRequest struct {
	// Amount is already in the gateway's minor unit (paise): the client
	// multiplies major units by 100 before calling.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// POST /api/payments/create-order
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	order, err := c.Gateway.CreateOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidAmount) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Amount must be at least 100 paise (₹1)",
			})
			return
		}
		var gwErr *utils.GatewayError
		if errors.As(err, &gwErr) {
			utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{
				Success: false,
				Message: "Failed to create payment order: " + gwErr.Message,
			})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to create payment order",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Order created",
		Data: map[string]interface{}{
			"order_id": order.OrderID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"key_id":   c.Gateway.KeyID(),
		},
	})
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`

	// Field names as the Razorpay checkout widget posts them.
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (req *verifyPaymentRequest) normalize() (orderID, paymentID, signature string) {
	orderID = req.OrderID
	if orderID == "" {
		orderID = req.RazorpayOrderID
	}
	paymentID = req.PaymentID
	if paymentID == "" {
		paymentID = req.RazorpayPaymentID
	}
	signature = req.Signature
	if signature == "" {
		signature = req.RazorpaySignature
	}
	return
}

// POST /api/payments/verify-payment
//
// Recomputes the HMAC over order_id|payment_id and compares with hmac.Equal.
// A mismatch is always a 400; it is never silently accepted.
func (c *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	orderID, paymentID, signature := req.normalize()
	if orderID == "" || paymentID == "" || signature == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "order_id, payment_id and signature are required",
		})
		return
	}

	if err := c.Gateway.VerifyPayment(orderID, paymentID, signature); err != nil {
		log.Printf("[PAYMENT] signature rejected for order %s: %v", orderID, err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Payment verification failed",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payment verified successfully",
	})
}
