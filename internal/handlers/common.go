package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ratemypic/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondServiceError maps a domain error to its status. Unmapped errors are
// logged and hidden behind a generic 500 message.
func respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	statusCode := errs.HTTPStatus(err)
	if statusCode == http.StatusInternalServerError {
		log.Error().Err(err).Msg(logMsg)
		respondError(w, "internal server error", statusCode)
		return
	}
	respondError(w, err.Error(), statusCode)
}

// decodeBody decodes and validates a JSON request body. On failure it writes
// a 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		message := "invalid request"
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			message = validationMessage(validateErrs)
		}
		respondError(w, message, http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", field, err.Param()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", field, err.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", field, err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
