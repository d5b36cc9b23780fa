package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrCheckoutFailed = errors.New("checkout request failed")
	ErrPDTFailed      = errors.New("pdt request failed")
	ErrIPNFailed      = errors.New("ipn verification failed")

	ErrNoTransport = errors.New("merchant has no transport configured")
)

// ResponseError is returned when the gateway answers with anything but 200.
// It matches the sentinel of its endpoint with errors.Is.
type ResponseError struct {
	Endpoint   Endpoint
	StatusCode int
	Body       string
}

func NewResponseError(endpoint Endpoint, resp *Response) *ResponseError {
	return &ResponseError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Body:       resp.Format(),
	}
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", e.sentinel(), e.StatusCode, e.Body)
}

func (e *ResponseError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ResponseError) sentinel() error {
	switch e.Endpoint {
	case EndpointCheckout:
		return ErrCheckoutFailed
	case EndpointPDT:
		return ErrPDTFailed
	case EndpointIPN:
		return ErrIPNFailed
	default:
		return fmt.Errorf("%s request failed", e.Endpoint)
	}
}
