package models

import "time"

// NGOPartner is a charitable partner shown in the public directory. Only
// verified rows are ever exposed through the listing endpoints; records are
// seeded and administered out of band.
type NGOPartner struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	LogoURL       string    `gorm:"type:varchar(255)" json:"logo_url"`
	Category      string    `gorm:"type:varchar(32);not null;index" json:"category"`
	Description   string    `gorm:"type:text" json:"description"`
	Website       string    `gorm:"type:varchar(255)" json:"website"`
	Verified      bool      `gorm:"not null;default:false;index" json:"verified"`
	Rating        float64   `gorm:"type:decimal(3,1);not null;default:0" json:"rating"`
	Projects      int       `gorm:"not null;default:0" json:"projects"`
	Beneficiaries string    `gorm:"type:varchar(32)" json:"beneficiaries"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (NGOPartner) TableName() string {
	return "ngo_partners"
}

// NGOCategoryStats is one row of the per-category aggregate over verified
// partners.
type NGOCategoryStats struct {
	Category      string  `json:"category"`
	TotalNGOs     int64   `json:"total_ngos" gorm:"column:total_ngos"`
	TotalProjects int64   `json:"total_projects"`
	AvgRating     float64 `json:"avg_rating"`
}
