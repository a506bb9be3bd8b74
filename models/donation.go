package models

import "time"

// Donation statuses. A donation is created as Pending and moves to Completed
// exactly once when its payment is verified, or to Failed/Cancelled. Rows are
// never deleted; later changes are admin status corrections only.
const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
	DonationStatusFailed    = "failed"
	DonationStatusCancelled = "cancelled"
)

var donationStatuses = map[string]bool{
	DonationStatusPending:   true,
	DonationStatusCompleted: true,
	DonationStatusFailed:    true,
	DonationStatusCancelled: true,
}

// IsValidDonationStatus reports whether status is one of the known statuses.
func IsValidDonationStatus(status string) bool {
	return donationStatuses[status]
}

type Donation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Email           string    `gorm:"type:varchar(191);not null;index" json:"email"`
	Phone           *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Amount          float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category        string    `gorm:"type:varchar(32);not null;index" json:"category"`
	Message         *string   `gorm:"type:text" json:"message,omitempty"`
	PaymentID       *string   `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	RazorpayOrderID *string   `gorm:"type:varchar(64);index" json:"razorpay_order_id,omitempty"`
	Status          string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationStats is the aggregate returned by /api/donations/stats/summary.
// TotalAmount sums completed donations only.
type DonationStats struct {
	TotalDonations     int64   `json:"total_donations"`
	TotalAmount        float64 `json:"total_amount"`
	CompletedDonations int64   `json:"completed_donations"`
}
