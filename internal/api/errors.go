package api

import "fmt"

// TransportError reports a connectivity failure: the request never got a
// usable HTTP response.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError reports a non-success HTTP status from the analysis
// service. Status and (truncated) body are surfaced as-is.
type ServiceError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %d on %s: %s", e.StatusCode, e.Endpoint, e.Body)
}
