// Package checkout models the multi-step donation wizard: donor details,
// amount and category, review, then the hosted payment widget. All state
// lives in the flow value for the current page session; nothing is kept
// server-side for an in-progress checkout.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/SanskrutiSakharkar/DonateMateProject/models"
	"github.com/SanskrutiSakharkar/DonateMateProject/utils"
)

type State string

const (
	StateCollectingDetails State = "collecting_details"
	StateCollectingAmount  State = "collecting_amount"
	StateReview            State = "review"
	StateAwaitingGateway   State = "awaiting_gateway"
	StateCompleted         State = "completed"
	StateCancelled         State = "cancelled"
	StateFailed            State = "failed"
)

// Form holds everything the wizard collects.
type Form struct {
	Name     string
	Email    string
	Phone    string
	Amount   float64 // major currency units
	Category string
	Message  string
}

// Order is the gateway-side reservation handed to the payment widget.
type Order struct {
	OrderID  string
	Amount   int64 // minor units
	Currency string
	KeyID    string
}

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
	OutcomeDismissed
)

// Result is what the externally hosted widget reports back through its
// success, failure or dismissal callback.
type Result struct {
	Outcome   Outcome
	PaymentID string
	Signature string
	Err       error
}

// Gateway abstracts the payment widget so the flow can be driven by a
// deterministic fake in tests.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string) (Order, error)
	InitiateCheckout(ctx context.Context, order Order, form Form) (Result, error)
}

// Recorder persists the donation once the payment succeeded.
type Recorder interface {
	SaveDonation(ctx context.Context, rec DonationRecord) error
}

// DonationRecord is the completed-checkout payload sent to the intake API.
type DonationRecord struct {
	Form
	PaymentID string
	OrderID   string
	Status    string
}

// ErrCheckoutDismissed is returned when the donor closes the payment widget.
var ErrCheckoutDismissed = errors.New("checkout dismissed")

// ErrPaymentFailed is returned when the widget reports a failed payment.
var ErrPaymentFailed = errors.New("payment failed")

// PaymentCapturedError means the payment succeeded but the donation record
// could not be saved. Callers must tell the donor the payment went through
// and to contact support; this is never reported as plain success or plain
// failure.
type PaymentCapturedError struct {
	PaymentID string
	Err       error
}

func (e *PaymentCapturedError) Error() string {
	return fmt.Sprintf("payment %s captured but donation record not saved: %v", e.PaymentID, e.Err)
}

func (e *PaymentCapturedError) Unwrap() error { return e.Err }

// Flow is the checkout state machine. Forward transitions are gated on
// per-step validation; Back is unconditional.
type Flow struct {
	state    State
	form     Form
	gateway  Gateway
	recorder Recorder

	paymentID string
	lastErr   error
}

func NewFlow(gateway Gateway, recorder Recorder) *Flow {
	return &Flow{
		state:    StateCollectingDetails,
		gateway:  gateway,
		recorder: recorder,
	}
}

func (f *Flow) State() State     { return f.state }
func (f *Flow) Form() Form       { return f.form }
func (f *Flow) LastError() error { return f.lastErr }

// PaymentID returns the gateway payment reference once a payment captured.
func (f *Flow) PaymentID() string { return f.paymentID }

// SetDetails records step-one input; it does not validate. Validation runs
// on Next.
func (f *Flow) SetDetails(name, email, phone string) {
	f.form.Name = name
	f.form.Email = email
	f.form.Phone = phone
}

// SetAmount records step-two input.
func (f *Flow) SetAmount(amount float64, category, message string) {
	f.form.Amount = amount
	f.form.Category = category
	f.form.Message = message
}

var (
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	rePhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func (f *Flow) validateDetails() error {
	if strings.TrimSpace(f.form.Name) == "" {
		return utils.NewFieldError("name", "name is required")
	}
	if !reEmail.MatchString(strings.TrimSpace(f.form.Email)) {
		return utils.NewFieldError("email", "valid email is required")
	}
	if p := strings.TrimSpace(f.form.Phone); p != "" && !rePhone.MatchString(p) {
		return utils.NewFieldError("phone", "phone must be 7-15 digits")
	}
	return nil
}

func (f *Flow) validateAmount() error {
	if f.form.Amount < 10 || f.form.Amount > 1000000 {
		return utils.NewFieldError("amount", "amount must be between 10 and 1,000,000")
	}
	if !models.IsValidCategory(f.form.Category) {
		return utils.NewFieldError("category", "select a donation category")
	}
	return nil
}

// Next advances one step when the current step's input validates.
func (f *Flow) Next() error {
	switch f.state {
	case StateCollectingDetails:
		if err := f.validateDetails(); err != nil {
			return err
		}
		f.state = StateCollectingAmount
	case StateCollectingAmount:
		if err := f.validateAmount(); err != nil {
			return err
		}
		f.state = StateReview
	default:
		return fmt.Errorf("cannot advance from %s", f.state)
	}
	return nil
}

// Back moves one step backward unconditionally.
func (f *Flow) Back() {
	switch f.state {
	case StateCollectingAmount:
		f.state = StateCollectingDetails
	case StateReview:
		f.state = StateCollectingAmount
	}
}

// Resume returns to Review after a failed or dismissed checkout so the donor
// can retry.
func (f *Flow) Resume() {
	if f.state == StateFailed || f.state == StateCancelled {
		f.state = StateReview
		f.lastErr = nil
	}
}

// Donate runs the suspended section of the flow: create a gateway order,
// hand off to the hosted widget, and on a successful callback record the
// donation. Valid only from Review.
func (f *Flow) Donate(ctx context.Context) error {
	if f.state != StateReview {
		return fmt.Errorf("donate is only possible from review, current state %s", f.state)
	}

	amountMinor := int64(math.Round(f.form.Amount * 100))
	order, err := f.gateway.CreateOrder(ctx, amountMinor, "INR")
	if err != nil {
		// Order creation failed before anything was charged: stay on Review.
		f.lastErr = err
		return err
	}

	f.state = StateAwaitingGateway
	result, err := f.gateway.InitiateCheckout(ctx, order, f.form)
	if err != nil {
		f.state = StateFailed
		f.lastErr = err
		return err
	}

	switch result.Outcome {
	case OutcomeSuccess:
		f.paymentID = result.PaymentID
		rec := DonationRecord{
			Form:      f.form,
			PaymentID: result.PaymentID,
			OrderID:   order.OrderID,
			Status:    models.DonationStatusCompleted,
		}
		if err := f.recorder.SaveDonation(ctx, rec); err != nil {
			// The money moved. Surface that explicitly; never report plain
			// success or lose the captured payment's reference.
			f.state = StateFailed
			f.lastErr = &PaymentCapturedError{PaymentID: result.PaymentID, Err: err}
			return f.lastErr
		}
		f.state = StateCompleted
		return nil
	case OutcomeDismissed:
		f.state = StateCancelled
		f.lastErr = ErrCheckoutDismissed
		return ErrCheckoutDismissed
	default:
		f.state = StateFailed
		if result.Err != nil {
			f.lastErr = result.Err
			return result.Err
		}
		f.lastErr = ErrPaymentFailed
		return ErrPaymentFailed
	}
}
