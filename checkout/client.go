package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/SanskrutiSakharkar/DonateMateProject/models"

	"github.com/go-resty/resty/v2"
)

// APIClient is the checkout flow's view of the donation API. DemoMode serves
// canned directory data instead of silently falling back to hardcoded NGOs
// on network failure, so tests and demos can tell real from fake responses.
type APIClient struct {
	DemoMode bool
	http     *resty.Client
}

func NewAPIClient(baseURL string, demoMode bool) *APIClient {
	return &APIClient{
		DemoMode: demoMode,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ngoListResponse struct {
	envelope
	Data []models.NGOPartner `json:"data"`
}

// GetNGOs fetches verified partners, optionally filtered by category.
func (c *APIClient) GetNGOs(ctx context.Context, category string) ([]models.NGOPartner, error) {
	if c.DemoMode {
		return demoNGOs(category), nil
	}

	path := "/api/ngos"
	if cat := models.NormalizeCategory(category); cat != "" && cat != "all" {
		path = "/api/ngos/category/" + cat
	}

	var out ngoListResponse
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() || !out.Success {
		return nil, fmt.Errorf("ngo listing failed: %s", out.Message)
	}
	return out.Data, nil
}

type orderResponse struct {
	envelope
	Data struct {
		OrderID  string `json:"order_id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		KeyID    string `json:"key_id"`
	} `json:"data"`
}

// CreateOrder asks the API to reserve an order with the gateway. amountMinor
// is in minor units; the flow does the multiplication from major units.
func (c *APIClient) CreateOrder(ctx context.Context, amountMinor int64, currency string) (Order, error) {
	var out orderResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"amount": amountMinor, "currency": currency}).
		SetResult(&out).
		SetError(&out).
		Post("/api/payments/create-order")
	if err != nil {
		return Order{}, err
	}
	if resp.IsError() || !out.Success {
		return Order{}, fmt.Errorf("order creation failed: %s", out.Message)
	}
	return Order{
		OrderID:  out.Data.OrderID,
		Amount:   out.Data.Amount,
		Currency: out.Data.Currency,
		KeyID:    out.Data.KeyID,
	}, nil
}

// SaveDonation posts the completed checkout to the intake endpoint. It
// implements Recorder.
func (c *APIClient) SaveDonation(ctx context.Context, rec DonationRecord) error {
	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"name":              rec.Name,
			"email":             rec.Email,
			"phone":             rec.Phone,
			"amount":            rec.Amount,
			"category":          rec.Category,
			"message":           rec.Message,
			"payment_id":        rec.PaymentID,
			"razorpay_order_id": rec.OrderID,
			"status":            rec.Status,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/api/donations")
	if err != nil {
		return err
	}
	if resp.IsError() || !out.Success {
		return fmt.Errorf("donation save failed: %s", out.Message)
	}
	return nil
}

func demoNGOs(category string) []models.NGOPartner {
	all := []models.NGOPartner{
		{
			ID: 1, Name: "Teach for India", Category: models.CategoryEducation,
			Description: "Eliminating educational inequity by expanding educational opportunity.",
			Website:     "https://teachforindia.org", Verified: true,
			Rating: 4.8, Projects: 45, Beneficiaries: "50,000+",
		},
		{
			ID: 2, Name: "Smile Foundation", Category: models.CategoryHealthcare,
			Description: "Healthcare and education programmes for underprivileged children.",
			Website:     "https://smilefoundationindia.org", Verified: true,
			Rating: 4.6, Projects: 60, Beneficiaries: "1,500,000+",
		},
	}
	cat := models.NormalizeCategory(category)
	if cat == "" || cat == "all" {
		return all
	}
	var filtered []models.NGOPartner
	for _, n := range all {
		if n.Category == cat {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
