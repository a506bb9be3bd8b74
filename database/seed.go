package database

import (
	"log"

	"github.com/SanskrutiSakharkar/DonateMateProject/models"

	"gorm.io/gorm"
)

// SeedNGOPartners inserts a starter set of verified partners when the table
// is empty. NGO records are otherwise administered out of band; this replaces
// the hardcoded fallback data the old client carried and only runs when
// DEMO_MODE=true (development/demo environments).
func SeedNGOPartners(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.NGOPartner{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	partners := []models.NGOPartner{
		{
			Name:          "Teach for India",
			Category:      models.CategoryEducation,
			Description:   "Eliminating educational inequity by expanding educational opportunity.",
			Website:       "https://teachforindia.org",
			LogoURL:       "/images/ngos/teach-for-india.jpg",
			Verified:      true,
			Rating:        4.8,
			Projects:      45,
			Beneficiaries: "50,000+",
		},
		{
			Name:          "Smile Foundation",
			Category:      models.CategoryHealthcare,
			Description:   "Healthcare and education programmes for underprivileged children and families.",
			Website:       "https://smilefoundationindia.org",
			LogoURL:       "/images/ngos/smile-foundation.jpg",
			Verified:      true,
			Rating:        4.6,
			Projects:      60,
			Beneficiaries: "1,500,000+",
		},
		{
			Name:          "SankalpTaru Foundation",
			Category:      models.CategoryEnvironment,
			Description:   "Tree plantation drives with geo-tagged reporting across rural India.",
			Website:       "https://sankalptaru.org",
			LogoURL:       "/images/ngos/sankalptaru.jpg",
			Verified:      true,
			Rating:        4.5,
			Projects:      30,
			Beneficiaries: "100,000+",
		},
		{
			Name:          "Goonj",
			Category:      models.CategoryEmergency,
			Description:   "Disaster relief and rural development using urban surplus material.",
			Website:       "https://goonj.org",
			LogoURL:       "/images/ngos/goonj.jpg",
			Verified:      true,
			Rating:        4.7,
			Projects:      25,
			Beneficiaries: "500,000+",
		},
		{
			Name:          "Akshaya Patra",
			Category:      models.CategoryPoverty,
			Description:   "Mid-day meal programme fighting classroom hunger.",
			Website:       "https://akshayapatra.org",
			LogoURL:       "/images/ngos/akshaya-patra.jpg",
			Verified:      true,
			Rating:        4.9,
			Projects:      52,
			Beneficiaries: "1,800,000+",
		},
		{
			Name:          "Blue Cross of India",
			Category:      models.CategoryAnimals,
			Description:   "Animal rescue, shelters and anti-cruelty programmes.",
			Website:       "https://bluecrossofindia.org",
			LogoURL:       "/images/ngos/blue-cross.jpg",
			Verified:      true,
			Rating:        4.4,
			Projects:      18,
			Beneficiaries: "200,000+",
		},
	}

	if err := db.Create(&partners).Error; err != nil {
		return err
	}
	log.Printf("[database] seeded %d NGO partners", len(partners))
	return nil
}
