package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/provider"
)

const (
	msgUpstream = "we couldn't look that one up right now. mind trying again?"
	msgInternal = "something went wrong. mind giving it another shot?"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// wordErrorResponse is the body of every non-200 /word response.
type wordErrorResponse struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error"`
}

// statusAndMessage maps a service error to an HTTP status and the text the
// player sees. Unexpected errors are logged here.
func statusAndMessage(r *http.Request, log *slog.Logger, err error) (int, string) {
	var rej *domain.RejectionError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &rej):
		return http.StatusBadRequest, rej.Reason.Message()
	case errors.As(err, &ve):
		return http.StatusBadRequest, validationMessage(ve)
	case errors.Is(err, provider.ErrUnavailable):
		log.WarnContext(r.Context(), "upstream unavailable", slog.String("error", err.Error()))
		return http.StatusBadGateway, msgUpstream
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		return http.StatusInternalServerError, msgInternal
	}
}

func validationMessage(ve *domain.ValidationError) string {
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Message
	}
	return ve.Error()
}
