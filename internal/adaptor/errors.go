package adaptor

import (
	"errors"
	"net/http"

	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps service errors to HTTP responses. Expected outcomes
// are logged at Warn; anything else is a 500 with a generic message.
func writeServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var unavailable *usecase.SeatsUnavailableError
	var invalid *usecase.InvalidInputError

	switch {
	case errors.As(err, &unavailable):
		log.Warn(operation+" failed - seats unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "Seats unavailable, refresh the seat map and choose again", map[string]any{
			"session_id": unavailable.SessionID,
			"seat_codes": unavailable.Codes,
		})

	case errors.As(err, &invalid):
		log.Warn(operation+" failed - invalid input",
			zap.Error(err),
			zap.String("operation", operation))
		var details any
		switch {
		case len(invalid.Fields) > 0:
			details = invalid.Fields
		case len(invalid.Codes) > 0:
			details = map[string]any{"seat_codes": invalid.Codes}
		}
		utils.ResponseBadRequest(w, err.Error(), details)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
