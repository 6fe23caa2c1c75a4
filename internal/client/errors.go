package client

import "errors"

// APIError is a non-2xx response from the backend. Detail carries the
// backend's message when the error body had one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// IsAuthFailure reports whether err is a rejected-credentials response.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
