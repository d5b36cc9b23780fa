package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Merchant is the identity a checkout or verification request is bound to.
// Implementations are read on demand, so later changes are visible to every
// request holding a reference.
type Merchant interface {
	MerchantID() string
	Token() string
	UseSandbox() bool
	Transport() Transport
}

// Transport sends a payload to one of the gateway endpoints.
type Transport interface {
	Send(ctx context.Context, endpoint Endpoint, payload any, sandbox bool) (*Response, error)
}

// Response is the outcome of a gateway call. Body holds the decoded JSON
// value when the payload was JSON and is nil otherwise; Raw always holds the
// bytes as received.
type Response struct {
	StatusCode int
	Body       any
	Raw        []byte
}

// NewResponse decodes raw into a Response.
func NewResponse(statusCode int, raw []byte) *Response {
	resp := &Response{StatusCode: statusCode, Raw: raw}

	var body any
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &body) == nil {
		resp.Body = body
	}

	return resp
}

// OK reports whether the gateway accepted the request.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Object returns the body as a JSON object, if it is one.
func (r *Response) Object() (map[string]any, bool) {
	obj, ok := r.Body.(map[string]any)
	return obj, ok
}

// Text returns the body as text: the decoded value when the gateway sent a
// JSON string, the raw bytes otherwise.
func (r *Response) Text() string {
	if s, ok := r.Body.(string); ok {
		return s
	}
	return string(r.Raw)
}

// Format pretty-prints the body for error messages.
func (r *Response) Format() string {
	if r.Body != nil {
		if _, isString := r.Body.(string); !isString {
			if out, err := json.MarshalIndent(r.Body, "", "  "); err == nil {
				return string(out)
			}
		}
	}
	return r.Text()
}
