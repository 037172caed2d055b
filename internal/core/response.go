package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"raincast/internal/types"
)

// APIErrorResponse is the standard envelope for all error API responses.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the structured error information returned to clients.
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
}

// JSON writes a JSON response with the given status code and data.
// If marshalling fails, it falls back to a 500 error response.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fallback := APIErrorResponse{
			Error: ErrorDetail{
				Code:      string(types.ErrCodeInternalUnexpected),
				Message:   "failed to marshal response",
				RequestID: types.GetRequestID(r.Context()),
			},
		}
		// Best-effort write; if this also fails, there is nothing more we can do.
		_ = json.NewEncoder(w).Encode(fallback)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes an error response to the client. It inspects the error chain:
//   - If the error is (or wraps) a *types.AppError, it uses its Code to
//     determine the HTTP status and writes a structured APIErrorResponse.
//   - Any other error returns a 500 with code "internal_unexpected_error".
//
// Wrapped internal errors are never exposed to the client. Generic error
// messages are replaced with a safe default to prevent information leakage.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	requestID := types.GetRequestID(r.Context())

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		resp := APIErrorResponse{
			Error: ErrorDetail{
				Code:      string(appErr.Code),
				Message:   appErr.Message,
				Details:   appErr.Details,
				RequestID: requestID,
			},
		}
		JSON(w, r, appErr.HTTPStatus(), resp)
		return
	}

	resp := APIErrorResponse{
		Error: ErrorDetail{
			Code:      string(types.ErrCodeInternalUnexpected),
			Message:   "an unexpected error occurred",
			RequestID: requestID,
		},
	}
	JSON(w, r, http.StatusInternalServerError, resp)
}
