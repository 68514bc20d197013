package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError represents an HTTP error response from the backend.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// errorFrom builds an APIError from a 4xx/5xx response, preferring the
// message the backend put in the JSON body.
func errorFrom(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	message := http.StatusText(resp.StatusCode)
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			message = payload.Message
		case payload.Error != "":
			message = payload.Error
		}
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}
