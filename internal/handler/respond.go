package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"hr-portal/internal/i18n"
	"hr-portal/internal/service"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR encoding response: %v", err)
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError maps service errors onto status codes and a localized message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msgID := http.StatusInternalServerError, "error.internal"
	switch {
	case errors.Is(err, service.ErrNotCheckedIn):
		status, msgID = http.StatusConflict, "error.not_checked_in"
	case errors.Is(err, service.ErrInvalidPrecondition):
		status, msgID = http.StatusConflict, "error.invalid_precondition"
	case errors.Is(err, service.ErrNotFound):
		status, msgID = http.StatusNotFound, "error.not_found"
	case errors.Is(err, service.ErrInvalidArgument):
		status, msgID = http.StatusBadRequest, "error.invalid_argument"
	case errors.Is(err, service.ErrUserExists):
		status, msgID = http.StatusConflict, "error.user_exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msgID = http.StatusUnauthorized, "error.invalid_credentials"
	case errors.Is(err, service.ErrForbidden):
		status, msgID = http.StatusForbidden, "error.forbidden"
	}
	resp := errorResponse{Error: i18n.T(r.Context(), msgID)}
	if status == http.StatusInternalServerError {
		log.Printf("ERROR %s %s: %v", r.Method, r.URL.Path, err)
	} else {
		resp.Detail = err.Error()
	}
	writeJSONStatus(w, status, resp)
}

// decodeJSON reads the body into dst and runs its validate tags.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, service.ErrInvalidArgument)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%v: %w", err, service.ErrInvalidArgument)
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
