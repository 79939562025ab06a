// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/storecatalog/pkg/auth"
	"github.com/ghuser/storecatalog/pkg/httpx"
	"github.com/ghuser/storecatalog/pkg/telemetry"
	catalogdomain "github.com/ghuser/storecatalog/services/catalog/domain"
)

// InternalErrorMessage is the only text a client sees for an unmapped error.
const InternalErrorMessage = "An unexpected error occurred"

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become a 500 with a generic message and are reported
// to Sentry through the request's hub.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	if status != http.StatusInternalServerError {
		httpx.JSONError(w, status, err.Error())
		return
	}

	telemetry.CaptureError(r.Context(), err)
	httpx.JSONError(w, status, InternalErrorMessage)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrUnauthorized):
		return http.StatusForbidden // 403
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized // 401
	case errors.Is(err, catalogdomain.ErrInvalidField),
		errors.Is(err, catalogdomain.ErrInvalidValue),
		errors.Is(err, catalogdomain.ErrInvalidInput):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
