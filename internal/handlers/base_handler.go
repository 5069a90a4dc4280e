package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/manav1337/Task-manager/internal/apperrors"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error onto an HTTP status. Validation
// failures carry field-level detail; anything outside the known taxonomy is
// logged with full context and surfaced as a generic 500.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := apperrors.AsValidationErrors(err); ok {
		h.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrUsernameTaken), errors.Is(err, apperrors.ErrEmailTaken):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrTaskNotFound), errors.Is(err, apperrors.ErrUserNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrNotTaskOwner):
		h.RespondError(w, http.StatusForbidden, err.Error())
	default:
		h.Logger.Error("unexpected error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
