package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// writeServiceError maps a service error onto the response envelope. Anything unrecognised is logged in full and
// answered with a generic 500 carrying the request id.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, verr.Message)
	case errors.Is(err, domain.ErrReferentialIntegrity):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, detail(err, domain.ErrReferentialIntegrity))
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, detail(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrDuplicateBooking):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "this email has already booked the event")
	case errors.Is(err, domain.ErrSlugTaken):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "an event with this title already exists")
	default:
		requestID := middleware.RequestIDFromContext(r.Context())
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "method", r.Method, "request_id", requestID, "err", err)
		helpers.WriteInternalError(w, requestID)
	}
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
