package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SanskrutiSakharkar/DonateMateProject/utils"
)

// AdminAuthMiddleware guards the administrative status-correction endpoints.
// It expects a Bearer token issued by the admin login endpoint.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: no token provided",
			})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

		claims, err := utils.ValidateAdminToken(r.Context(), tokenStr)
		if err != nil {
			msg := "Unauthorized: invalid token"
			if strings.Contains(err.Error(), "expired") {
				msg = "Session expired, please log in again"
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: msg,
			})
			return
		}

		email, _ := claims["email"].(string)
		ctx := context.WithValue(r.Context(), utils.AdminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
