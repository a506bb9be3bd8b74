package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/SanskrutiSakharkar/DonateMateProject/models"
	"github.com/SanskrutiSakharkar/DonateMateProject/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Practical donation range in major currency units.
const (
	minDonationAmount = 10
	maxDonationAmount = 1000000
)

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

type DonationController struct {
	DB *gorm.DB
}

func NewDonationController(db *gorm.DB) *DonationController {
	return &DonationController{DB: db}
}

type createDonationRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Message         string  `json:"message"`
	PaymentID       string  `json:"payment_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Status          string  `json:"status"`
}

// validate rejects the request with a field-specific error before any
// database work happens.
func (req *createDonationRequest) validate() *utils.FieldError {
	if strings.TrimSpace(req.Name) == "" {
		return utils.NewFieldError("name", "name is required and must be a non-empty string")
	}
	if !reEmail.MatchString(strings.TrimSpace(req.Email)) {
		return utils.NewFieldError("email", "valid email is required")
	}
	if req.Amount <= 0 {
		return utils.NewFieldError("amount", "amount must be greater than zero")
	}
	if req.Amount < minDonationAmount || req.Amount > maxDonationAmount {
		return utils.NewFieldError("amount", "amount must be between 10 and 1,000,000")
	}
	if strings.TrimSpace(req.Category) == "" {
		return utils.NewFieldError("category", "category is required")
	}
	if !models.IsValidCategory(req.Category) {
		return utils.NewFieldError("category", "unknown donation category")
	}
	if req.Status != "" && !models.IsValidDonationStatus(req.Status) {
		return utils.NewFieldError("status", "unknown donation status")
	}
	return nil
}

// POST /api/donations
//
// Donations are created at the point the checkout success callback fires.
// Status defaults to pending; the callback passes "completed" once the
// payment signature has been verified.
func (c *DonationController) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	if ferr := req.validate(); ferr != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Validation error",
			Data:    map[string]string{"field": ferr.Field, "error": ferr.Reason},
		})
		return
	}

	status := req.Status
	if status == "" {
		status = models.DonationStatusPending
	}

	donation := models.Donation{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           utils.StringPtr(strings.TrimSpace(req.Phone)),
		Amount:          req.Amount,
		Category:        models.NormalizeCategory(req.Category),
		Message:         utils.StringPtr(strings.TrimSpace(req.Message)),
		PaymentID:       utils.StringPtr(req.PaymentID),
		RazorpayOrderID: utils.StringPtr(req.RazorpayOrderID),
		Status:          status,
	}

	if err := c.DB.Create(&donation).Error; err != nil {
		log.Printf("[donations] create failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to save donation",
		})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Donation saved successfully",
		Data:    donation,
	})
}

// GET /api/donations?limit=&offset=
func (c *DonationController) GetDonations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	donations := make([]models.Donation, 0)
	if err := c.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&donations).Error; err != nil {
		log.Printf("[donations] list failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch donations",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    donations,
	})
}

// GET /api/donations/{id}
func (c *DonationController) GetDonationByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid donation id",
		})
		return
	}

	var donation models.Donation
	if err := c.DB.First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{
				Success: false,
				Message: "Donation not found",
			})
			return
		}
		log.Printf("[donations] lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch donation",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    donation,
	})
}

// GET /api/donations/stats/summary
//
// total_amount counts completed donations only; pending and failed rows
// contribute nothing.
func (c *DonationController) GetStats(w http.ResponseWriter, r *http.Request) {
	var stats models.DonationStats
	err := c.DB.Raw(`
		SELECT
			COUNT(*) AS total_donations,
			COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS total_amount,
			COUNT(CASE WHEN status = ? THEN 1 END) AS completed_donations
		FROM donations`,
		models.DonationStatusCompleted, models.DonationStatusCompleted,
	).Scan(&stats).Error
	if err != nil {
		log.Printf("[donations] stats failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch statistics",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    stats,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/donations/{id}/status
//
// Administrative status correction. Completed records are otherwise
// immutable; this is the only write path after creation.
func (c *DonationController) UpdateDonationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid donation id",
		})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Status is required",
		})
		return
	}
	if !models.IsValidDonationStatus(req.Status) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Validation error",
			Data:    map[string]string{"field": "status", "error": "unknown donation status"},
		})
		return
	}

	res := c.DB.Model(&models.Donation{}).Where("id = ?", id).Update("status", req.Status)
	if res.Error != nil {
		log.Printf("[donations] status update failed: %v", res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to update donation status",
		})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{
			Success: false,
			Message: "Donation not found",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Donation status updated successfully",
	})
}
