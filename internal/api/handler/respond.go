package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"loan-portal/internal/api/handler/dto"
	"loan-portal/internal/pkg/apperrors"
	"loan-portal/internal/screen"
	"log/slog"
	"net/http"
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// errorStatus maps an error kind to its HTTP status and a safe default message.
func errorStatus(err error) (int, string, string) {
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &validationError):
		return http.StatusBadRequest, "VALIDATION_ERROR", validationError.Message
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"
	case errors.Is(err, apperrors.ErrRequestFailed):
		return http.StatusBadGateway, "GATEWAY_ERROR", "The loan servicing API could not complete the request."
	case errors.Is(err, apperrors.ErrDatabase):
		return http.StatusInternalServerError, "DB_ERROR", "A database error occurred."
	case errors.As(err, &appErr):
		return http.StatusInternalServerError, appErr.Code, appErr.Message
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred."
	}
}

func respondError(w http.ResponseWriter, err error) {
	status, code, message := errorStatus(err)

	detail := dto.ErrorDetail{Code: code, Message: message}
	if ve, ok := apperrors.AsValidationError(err); ok {
		detail.Field = ve.Field
	}
	respondJSON(w, status, dto.ErrorResponse{Error: detail})
}

// respondScreenError reports err with the screen's own notification text when
// the screen produced one.
func respondScreenError(w http.ResponseWriter, err error, note *screen.Notification) {
	if note == nil {
		respondError(w, err)
		return
	}
	status, code, _ := errorStatus(err)
	respondJSON(w, status, dto.ErrorResponse{Error: dto.ErrorDetail{
		Code:    code,
		Title:   note.Title,
		Message: note.Message,
		Field:   note.Field,
	}})
}
