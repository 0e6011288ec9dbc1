package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/report"
	"github.com/routr/backend/internal/validate"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message (e.g. "trip not found") because the handler
// is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer. Field messages are attached when err came from the
// request validator.
func requestBody(err error) ErrorResponse {
	fields := validate.Fields(err)
	if fields == nil {
		return errorBody("validation_error", err.Error())
	}
	return ErrorResponse{Error: ErrorDetail{
		Code:    "validation_error",
		Message: "request has invalid fields",
		Fields:  fields,
	}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: stops[0]: validation error: pallet counts must not be negative"
// becomes "stops[0]: pallet counts must not be negative".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for strings.HasPrefix(msg, "service.") {
		_, rest, ok := strings.Cut(msg, ": ")
		if !ok {
			break
		}
		msg = rest
	}
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrConflict} {
		msg = strings.Replace(msg, sentinel.Error()+": ", "", 1)
	}
	return msg
}

// writeError maps err onto an HTTP response. notFound is the message used
// when err wraps domain.ErrNotFound. Unexpected errors are logged and answered
// with a generic 500 so internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", unwrapMessage(err)))
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "invalid email or password"))
	case errors.Is(err, report.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("report_unavailable", "report generation is not configured"))
	case errors.Is(err, domain.ErrUpstream):
		s.log.WarnContext(r.Context(), "report generation failed",
			slog.String("error", err.Error()),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
		writeJSON(w, http.StatusBadGateway, errorBody("upstream_error", "report generation failed, try again"))
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}
