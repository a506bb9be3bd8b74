package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/SanskrutiSakharkar/DonateMateProject/models"
	"github.com/SanskrutiSakharkar/DonateMateProject/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type NGOController struct {
	DB *gorm.DB
}

func NewNGOController(db *gorm.DB) *NGOController {
	return &NGOController{DB: db}
}

// verifiedNGOs scopes every public listing query. Unverified partners are
// never exposed.
func (c *NGOController) verifiedNGOs() *gorm.DB {
	return c.DB.Model(&models.NGOPartner{}).Where("verified = ?", true)
}

// GET /api/ngos?category=X
//
// Category matching is case-insensitive; "all" or absent means unfiltered.
// An unknown category yields an empty list, not an error.
func (c *NGOController) GetAllNGOs(w http.ResponseWriter, r *http.Request) {
	query := c.verifiedNGOs()
	if category := models.NormalizeCategory(r.URL.Query().Get("category")); category != "" && category != "all" {
		query = query.Where("LOWER(category) = ?", category)
	}

	ngos := make([]models.NGOPartner, 0)
	if err := query.Order("rating DESC, name ASC").Find(&ngos).Error; err != nil {
		log.Printf("[ngos] list failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch NGOs",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    ngos,
	})
}

// GET /api/ngos/category/{category}
func (c *NGOController) GetNGOsByCategory(w http.ResponseWriter, r *http.Request) {
	category := models.NormalizeCategory(mux.Vars(r)["category"])

	ngos := make([]models.NGOPartner, 0)
	err := c.verifiedNGOs().
		Where("LOWER(category) = ?", category).
		Order("rating DESC, name ASC").
		Find(&ngos).Error
	if err != nil {
		log.Printf("[ngos] category list failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch NGOs by category",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    ngos,
	})
}

// GET /api/ngos/{id}
func (c *NGOController) GetNGOByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid NGO id",
		})
		return
	}

	var ngo models.NGOPartner
	if err := c.DB.First(&ngo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{
				Success: false,
				Message: "NGO not found",
			})
			return
		}
		log.Printf("[ngos] lookup failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch NGO",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    ngo,
	})
}

// GET /api/ngos/stats
func (c *NGOController) GetNGOStats(w http.ResponseWriter, r *http.Request) {
	stats := make([]models.NGOCategoryStats, 0)
	err := c.DB.Raw(`
		SELECT
			category,
			COUNT(*) AS total_ngos,
			COALESCE(SUM(projects), 0) AS total_projects,
			COALESCE(AVG(rating), 0) AS avg_rating
		FROM ngo_partners
		WHERE verified = ?
		GROUP BY category`, true,
	).Scan(&stats).Error
	if err != nil {
		log.Printf("[ngos] stats failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch NGO statistics",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data:    stats,
	})
}
