package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// availableModelser is implemented by errors for unknown configuration ids.
type availableModelser interface {
	AvailableModels() []string
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeErrorResponse(w, types.ErrorResponse{Error: msg, Code: status})
}

func writeErrorResponse(w http.ResponseWriter, resp types.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeServiceError maps err to a status code via HTTPError, defaulting to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	resp := types.ErrorResponse{Error: err.Error(), Code: http.StatusInternalServerError}
	var he HTTPError
	if errors.As(err, &he) {
		resp.Code = he.StatusCode()
	}
	var am availableModelser
	if errors.As(err, &am) {
		resp.AvailableModels = am.AvailableModels()
	}
	writeErrorResponse(w, resp)
}
