package services

import (
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
)

// ServiceError represents a typed error with an HTTP status code. Details
// carries extra response fields, e.g. the staged-upload id kept after a
// failed forward.
type ServiceError struct {
	StatusCode int
	Message    string
	Details    map[string]interface{}
}

func (e *ServiceError) Error() string {
	return e.Message
}

// upstreamError translates a marketplace client failure. Upstream 4xx keep
// their status and message; transport failures and upstream 5xx surface as a
// 502 with the given fallback message.
func upstreamError(err error, fallback string) *ServiceError {
	if apiErr, ok := clients.AsAPIError(err); ok && apiErr.StatusCode < 500 {
		return &ServiceError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return &ServiceError{StatusCode: http.StatusBadGateway, Message: fallback}
}
