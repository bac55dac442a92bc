package transport

import (
	"net/http"

	"storefront/internal/middleware"
)

// Liveness reports that the API is up
func Liveness(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "E-commerce API is running",
	})
}
