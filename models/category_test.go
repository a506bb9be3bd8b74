package models

import "testing"

func TestIsValidCategory(t *testing.T) {
	valid := []string{"education", "Healthcare", "ENVIRONMENT", " emergency ", "poverty", "animals", "general"}
	for _, c := range valid {
		if !IsValidCategory(c) {
			t.Errorf("expected %q to be valid", c)
		}
	}
	invalid := []string{"", "sports", "Emergency Relief", "educations"}
	for _, c := range invalid {
		if IsValidCategory(c) {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("  Education "); got != "education" {
		t.Fatalf("got %q", got)
	}
}

func TestIsValidDonationStatus(t *testing.T) {
	for _, s := range []string{"pending", "completed", "failed", "cancelled"} {
		if !IsValidDonationStatus(s) {
			t.Errorf("expected %q valid", s)
		}
	}
	for _, s := range []string{"", "Pending", "refunded"} {
		if IsValidDonationStatus(s) {
			t.Errorf("expected %q invalid", s)
		}
	}
}
