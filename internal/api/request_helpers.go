package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/api/shared"
	"github.com/phrazzld/tasktimer-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
//
// Returns:
//   - (uuid.UUID, nil): The parsed UUID if valid
//   - (uuid.Nil, error): A *domain.ValidationError wrapping domain.ErrInvalidID
//     if the parameter is missing or malformed
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleAPIError writes the status and safe message for err. fallback is the
// message used when err is unexpected.
func handleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err, fallback)
	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}
