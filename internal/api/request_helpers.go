package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/phrazzld/wordhoard/internal/domain"
)

// decodeAndValidate decodes the JSON body into v and validates it. Decode
// failures are wrapped in ErrBadRequest.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return decodeError(err)
	}
	return shared.ValidateRequest(v)
}

func decodeError(err error) error {
	if errors.Is(err, shared.ErrEmptyBody) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrBadRequest, err)
}

// pathParam returns a required chi URL parameter.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if v == "" {
		return "", domain.NewValidationError(name, "is required", nil)
	}
	return v, nil
}
