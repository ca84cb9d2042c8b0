package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
	"github.com/phrazzld/wordhoard/internal/generation"
	"github.com/phrazzld/wordhoard/internal/session"
	"github.com/phrazzld/wordhoard/internal/store"
)

// Errors raised by the handlers themselves.
var (
	ErrFlashcardNotFound = errors.New("flashcard not found")
	ErrWordlistNotFound  = errors.New("wordlist not found")
	ErrFolderNotFound    = errors.New("folder not found")
	ErrBadRequest        = errors.New("bad request")
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs),
		domain.IsValidationError(err),
		errors.Is(err, session.ErrInvalidMode):
		return http.StatusBadRequest

	case errors.Is(err, ErrFlashcardNotFound),
		errors.Is(err, ErrWordlistNotFound),
		errors.Is(err, ErrFolderNotFound),
		errors.Is(err, session.ErrWordlistNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case domain.IsCapacityError(err),
		errors.Is(err, session.ErrNotTestMode),
		errors.Is(err, session.ErrNotLearnMode):
		return http.StatusConflict

	case errors.Is(err, session.ErrEmptyWordlist):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrTransientFailure):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that is safe to show the client.
// Domain validation and capacity messages are written for end users and
// pass through unchanged.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		validationErrs validator.ValidationErrors
		validationErr  *domain.ValidationError
		capacityErr    *domain.CapacityError
	)
	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.As(err, &capacityErr):
		return capacityErr.Message
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, domain.ErrInvalidOrder):
		return "Order must be one of created_at, alpha, shuffle"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, ErrBadRequest):
		return "Invalid request body"
	case errors.Is(err, ErrFlashcardNotFound):
		return "Flashcard not found"
	case errors.Is(err, ErrWordlistNotFound), errors.Is(err, session.ErrWordlistNotFound):
		return "Wordlist not found"
	case errors.Is(err, ErrFolderNotFound):
		return "Folder not found"
	case errors.Is(err, session.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, session.ErrEmptyWordlist):
		return "Wordlist has no flashcards"
	case errors.Is(err, session.ErrInvalidMode):
		return "Mode must be learn or test"
	case errors.Is(err, session.ErrNotTestMode):
		return "Reveal is only available in test mode"
	case errors.Is(err, session.ErrNotLearnMode):
		return "Only available in learn mode"
	case errors.Is(err, generation.ErrContentBlocked):
		return "Content was blocked by the language model"
	case errors.Is(err, generation.ErrTransientFailure):
		return "Content generation is temporarily unavailable"
	case errors.Is(err, generation.ErrInvalidResponse), errors.Is(err, generation.ErrGenerationFailed):
		return "Failed to generate content"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message
// naming the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Invalid %s: required field", field)
	case "max":
		return fmt.Sprintf("Invalid %s: too long (max %s)", field, fe.Param())
	case "min":
		return fmt.Sprintf("Invalid %s: too short", field)
	case "oneof":
		return fmt.Sprintf("Invalid %s: must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("Invalid %s: must be a URL", field)
	case "uuid":
		return fmt.Sprintf("Invalid %s: must be a UUID", field)
	default:
		return fmt.Sprintf("Invalid %s", field)
	}
}

// HandleAPIError writes the mapped status and safe message for err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
