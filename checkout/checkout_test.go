package checkout

import (
	"context"
	"errors"
	"testing"
)

type fakeGateway struct {
	result     Result
	orderErr   error
	initErr    error
	orders     int
	lastAmount int64
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string) (Order, error) {
	g.orders++
	g.lastAmount = amountMinor
	if g.orderErr != nil {
		return Order{}, g.orderErr
	}
	return Order{OrderID: "order_test1", Amount: amountMinor, Currency: currency, KeyID: "rzp_test_key"}, nil
}

func (g *fakeGateway) InitiateCheckout(ctx context.Context, order Order, form Form) (Result, error) {
	if g.initErr != nil {
		return Result{}, g.initErr
	}
	return g.result, nil
}

type fakeRecorder struct {
	saveErr error
	saved   []DonationRecord
}

func (r *fakeRecorder) SaveDonation(ctx context.Context, rec DonationRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	return nil
}

func validFlow(g Gateway, r Recorder) *Flow {
	f := NewFlow(g, r)
	f.SetDetails("Asha Rao", "asha@example.com", "9876543210")
	f.SetAmount(500, "education", "")
	return f
}

func advanceToReview(t *testing.T, f *Flow) {
	t.Helper()
	if err := f.Next(); err != nil {
		t.Fatalf("details step: %v", err)
	}
	if err := f.Next(); err != nil {
		t.Fatalf("amount step: %v", err)
	}
	if f.State() != StateReview {
		t.Fatalf("expected review, got %s", f.State())
	}
}

func TestFlow_ForwardGatedOnValidation(t *testing.T) {
	f := NewFlow(&fakeGateway{}, &fakeRecorder{})

	if err := f.Next(); err == nil {
		t.Fatal("expected validation error with empty details")
	}
	if f.State() != StateCollectingDetails {
		t.Fatalf("failed validation must not advance, state %s", f.State())
	}

	f.SetDetails("Asha Rao", "not-an-email", "")
	if err := f.Next(); err == nil {
		t.Fatal("expected email validation error")
	}

	f.SetDetails("Asha Rao", "asha@example.com", "")
	if err := f.Next(); err != nil {
		t.Fatalf("valid details rejected: %v", err)
	}

	f.SetAmount(5, "education", "")
	if err := f.Next(); err == nil {
		t.Fatal("expected amount range error")
	}
	f.SetAmount(500, "sports", "")
	if err := f.Next(); err == nil {
		t.Fatal("expected unknown category error")
	}
	f.SetAmount(500, "education", "")
	if err := f.Next(); err != nil {
		t.Fatalf("valid amount rejected: %v", err)
	}
	if f.State() != StateReview {
		t.Fatalf("expected review, got %s", f.State())
	}
}

func TestFlow_BackIsUnconditional(t *testing.T) {
	f := validFlow(&fakeGateway{}, &fakeRecorder{})
	advanceToReview(t, f)

	f.Back()
	if f.State() != StateCollectingAmount {
		t.Fatalf("expected collecting_amount, got %s", f.State())
	}
	f.Back()
	if f.State() != StateCollectingDetails {
		t.Fatalf("expected collecting_details, got %s", f.State())
	}
	// Back at the first step is a no-op
	f.Back()
	if f.State() != StateCollectingDetails {
		t.Fatalf("expected collecting_details, got %s", f.State())
	}
}

func TestFlow_DonateSuccessRecordsCompletedDonation(t *testing.T) {
	gw := &fakeGateway{result: Result{Outcome: OutcomeSuccess, PaymentID: "pay_123", Signature: "sig"}}
	rec := &fakeRecorder{}
	f := validFlow(gw, rec)
	advanceToReview(t, f)

	if err := f.Donate(context.Background()); err != nil {
		t.Fatalf("donate: %v", err)
	}
	if f.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", f.State())
	}
	if len(rec.saved) != 1 {
		t.Fatalf("expected one saved donation, got %d", len(rec.saved))
	}
	saved := rec.saved[0]
	if saved.Status != "completed" || saved.PaymentID != "pay_123" || saved.OrderID != "order_test1" {
		t.Fatalf("unexpected record: %+v", saved)
	}
}

func TestFlow_DonateFromWrongStateRejected(t *testing.T) {
	f := validFlow(&fakeGateway{}, &fakeRecorder{})
	if err := f.Donate(context.Background()); err == nil {
		t.Fatal("donate before review must fail")
	}
}

func TestFlow_GatewayFailureAllowsRetry(t *testing.T) {
	gw := &fakeGateway{result: Result{Outcome: OutcomeFailed, Err: errors.New("card declined")}}
	f := validFlow(gw, &fakeRecorder{})
	advanceToReview(t, f)

	if err := f.Donate(context.Background()); err == nil {
		t.Fatal("expected payment failure")
	}
	if f.State() != StateFailed {
		t.Fatalf("expected failed, got %s", f.State())
	}

	f.Resume()
	if f.State() != StateReview {
		t.Fatalf("resume should return to review, got %s", f.State())
	}

	gw.result = Result{Outcome: OutcomeSuccess, PaymentID: "pay_retry"}
	if err := f.Donate(context.Background()); err != nil {
		t.Fatalf("retry donate: %v", err)
	}
	if f.State() != StateCompleted {
		t.Fatalf("expected completed after retry, got %s", f.State())
	}
}

func TestFlow_DismissalCancels(t *testing.T) {
	gw := &fakeGateway{result: Result{Outcome: OutcomeDismissed}}
	f := validFlow(gw, &fakeRecorder{})
	advanceToReview(t, f)

	err := f.Donate(context.Background())
	if !errors.Is(err, ErrCheckoutDismissed) {
		t.Fatalf("expected ErrCheckoutDismissed, got %v", err)
	}
	if f.State() != StateCancelled {
		t.Fatalf("expected cancelled, got %s", f.State())
	}

	f.Resume()
	if f.State() != StateReview {
		t.Fatalf("resume should return to review, got %s", f.State())
	}
}

func TestFlow_OrderCreationFailureStaysOnReview(t *testing.T) {
	gw := &fakeGateway{orderErr: errors.New("gateway down")}
	f := validFlow(gw, &fakeRecorder{})
	advanceToReview(t, f)

	if err := f.Donate(context.Background()); err == nil {
		t.Fatal("expected order creation error")
	}
	if f.State() != StateReview {
		t.Fatalf("nothing was charged, flow must stay on review, got %s", f.State())
	}
}

func TestFlow_PaymentCapturedButSaveFailed(t *testing.T) {
	gw := &fakeGateway{result: Result{Outcome: OutcomeSuccess, PaymentID: "pay_789"}}
	rec := &fakeRecorder{saveErr: errors.New("db down")}
	f := validFlow(gw, rec)
	advanceToReview(t, f)

	err := f.Donate(context.Background())
	var captured *PaymentCapturedError
	if !errors.As(err, &captured) {
		t.Fatalf("expected PaymentCapturedError, got %v", err)
	}
	if captured.PaymentID != "pay_789" {
		t.Fatalf("captured payment reference lost: %+v", captured)
	}
	if f.State() != StateFailed {
		t.Fatalf("expected failed, got %s", f.State())
	}
	if f.PaymentID() != "pay_789" {
		t.Fatal("flow must retain the captured payment id for support follow-up")
	}
}

func TestFlow_MinorUnitConversion(t *testing.T) {
	gw := &fakeGateway{result: Result{Outcome: OutcomeSuccess, PaymentID: "pay_1"}}
	rec := &fakeRecorder{}
	f := NewFlow(gw, rec)
	f.SetDetails("Asha Rao", "asha@example.com", "")
	f.SetAmount(499.99, "general", "")
	advanceToReview(t, f)

	if err := f.Donate(context.Background()); err != nil {
		t.Fatalf("donate: %v", err)
	}
	// 499.99 major units -> 49999 paise, rounded not truncated
	if gw.lastAmount != 49999 {
		t.Fatalf("expected 49999 paise sent to gateway, got %d", gw.lastAmount)
	}
	if got := rec.saved[0].Amount; got != 499.99 {
		t.Fatalf("recorded amount changed: %v", got)
	}
}
