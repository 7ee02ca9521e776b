package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/httpx"
	"github.com/kinotek/kinotek/pkg/pagex"
	"github.com/kinotek/kinotek/pkg/slogx"
)

// writeServiceError maps service and store sentinels onto the JSON error
// envelope. Anything unrecognized is a 500 and gets logged; the envelope
// stays generic so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.APIError{Status: http.StatusNotFound, Code: "not_found",
			Message: "resource not found"}.WriteError(w)

	case errors.Is(err, store.ErrAlreadyExists):
		httpx.APIError{Status: http.StatusConflict, Code: "already_exists",
			Message: "resource already exists"}.WriteError(w)

	case errors.Is(err, service.ErrUnknownGenre):
		httpx.APIError{Status: http.StatusBadRequest, Code: "unknown_genre",
			Message: "one or more genre ids do not exist"}.WriteError(w)

	case errors.Is(err, pagex.ErrMalformedCursor):
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_cursor",
			Message: "cursor is malformed"}.WriteError(w)

	case errors.Is(err, pagex.ErrInvalidOrder), errors.Is(err, pagex.ErrUnknownColumn):
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_order",
			Message: "order specification is not valid"}.WriteError(w)

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.APIError{Status: http.StatusInternalServerError, Code: "server_error",
			Message: "something went wrong"}.WriteError(w)
	}
}

var errInvalidBody = httpx.APIError{
	Status:  http.StatusBadRequest,
	Code:    "invalid_request",
	Message: "request body is not valid JSON",
}

var errInvalidID = httpx.APIError{
	Status:  http.StatusBadRequest,
	Code:    "invalid_request",
	Message: "id must be an integer",
}
