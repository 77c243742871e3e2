package gateway

import (
	"errors"
	"net/http"
)

// RequestError is the uniform failure for network errors, undecodable
// responses, and non-2xx statuses. Status is zero when no HTTP response was
// received at all.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// IsAuthError reports whether err is a RequestError carrying an
// authentication-class HTTP status.
func IsAuthError(err error) bool {
	var re *RequestError
	return errors.As(err, &re) &&
		(re.Status == http.StatusUnauthorized || re.Status == http.StatusForbidden)
}
