package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SanskrutiSakharkar/DonateMateProject/controllers"
	"github.com/SanskrutiSakharkar/DonateMateProject/controllers/admins"
	"github.com/SanskrutiSakharkar/DonateMateProject/middleware"
	"github.com/SanskrutiSakharkar/DonateMateProject/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "donatemate-api",
	})
}

func InitRouter(db *gorm.DB, gateway *utils.RazorpayClient) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks (root level)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	origins := []string{
		"http://localhost:3000", "http://localhost:8080",
		"http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/api").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	donationController := controllers.NewDonationController(db)
	ngoController := controllers.NewNGOController(db)
	paymentController := controllers.NewPaymentController(gateway)

	// NGO directory (public, verified partners only). Fixed paths before the
	// {id} pattern so /stats and /category don't match as ids.
	api.HandleFunc("/ngos", ngoController.GetAllNGOs).Methods(http.MethodGet)
	api.HandleFunc("/ngos/stats", ngoController.GetNGOStats).Methods(http.MethodGet)
	api.HandleFunc("/ngos/category/{category}", ngoController.GetNGOsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/ngos/{id:[0-9]+}", ngoController.GetNGOByID).Methods(http.MethodGet)

	// Donation intake
	api.HandleFunc("/donations", donationController.CreateDonation).Methods(http.MethodPost)
	api.HandleFunc("/donations", donationController.GetDonations).Methods(http.MethodGet)
	api.HandleFunc("/donations/stats/summary", donationController.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/donations/{id:[0-9]+}", donationController.GetDonationByID).Methods(http.MethodGet)

	// Status corrections are administrative
	api.Handle("/donations/{id:[0-9]+}/status",
		middleware.AdminAuthMiddleware(http.HandlerFunc(donationController.UpdateDonationStatus))).
		Methods(http.MethodPatch)

	// Payment bridge, rate limited per IP: 30 requests/minute
	paymentLimiter := middleware.NewIPRateLimiter(30, time.Minute)
	api.Handle("/payments/create-order",
		paymentLimiter.Middleware(http.HandlerFunc(paymentController.CreateOrder))).
		Methods(http.MethodPost)
	api.Handle("/payments/verify-payment",
		paymentLimiter.Middleware(http.HandlerFunc(paymentController.VerifyPayment))).
		Methods(http.MethodPost)

	// Admin session endpoints
	api.HandleFunc("/admin/login", admins.Login).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", admins.Logout).Methods(http.MethodPost)

	return r
}
