package transport

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

// parsePagination extracts limit and offset from the query string, applying
// defaults when absent. Violations of limit >= 1 or offset >= 0 are reported
// as validation errors so the handler can reject the request before the core
// logic runs.
func parsePagination(r *http.Request) (limit, offset int, errs []middleware.ValidationError) {
	limit = defaultLimit
	offset = defaultOffset

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			errs = append(errs, middleware.ValidationError{
				Field:   "limit",
				Message: "Value must be an integer greater than or equal to 1",
			})
		} else {
			limit = v
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs = append(errs, middleware.ValidationError{
				Field:   "offset",
				Message: "Value must be an integer greater than or equal to 0",
			})
		} else {
			offset = v
		}
	}

	return limit, offset, errs
}
