package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sunlighthq/tasks-service/internal/api/handlers"
	"github.com/sunlighthq/tasks-service/internal/infrastructure/auth"
	"github.com/sunlighthq/tasks-service/internal/repository"
)

// AuthMiddleware verifies the Bearer access token and loads the caller from
// the store. Missing or invalid credentials are always a 401 — never an empty
// result.
func AuthMiddleware(jwtManager *auth.JWTManager, userRepo repository.IUserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := jwtManager.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			user, err := userRepo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil || !user.IsActive {
				unauthorized(w, "unknown user")
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
