package models

import "strings"

// Donation categories. The same enumeration classifies donations and NGO
// partners; values are stored lowercase.
const (
	CategoryEducation   = "education"
	CategoryHealthcare  = "healthcare"
	CategoryEnvironment = "environment"
	CategoryEmergency   = "emergency"
	CategoryPoverty     = "poverty"
	CategoryAnimals     = "animals"
	CategoryGeneral     = "general"
)

var donationCategories = map[string]bool{
	CategoryEducation:   true,
	CategoryHealthcare:  true,
	CategoryEnvironment: true,
	CategoryEmergency:   true,
	CategoryPoverty:     true,
	CategoryAnimals:     true,
	CategoryGeneral:     true,
}

// NormalizeCategory lowercases and trims a category value.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// IsValidCategory reports whether category (case-insensitive) is one of the
// known donation categories.
func IsValidCategory(category string) bool {
	return donationCategories[NormalizeCategory(category)]
}
