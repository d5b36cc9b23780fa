package gateway

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		endpoint Endpoint
		sandbox  bool
		expected string
	}{
		{EndpointCheckout, false, CheckoutProductionURL},
		{EndpointCheckout, true, CheckoutSandboxURL},
		{EndpointPDT, false, PDTProductionURL},
		{EndpointPDT, true, PDTSandboxURL},
		{EndpointIPN, false, IPNProductionURL},
		{EndpointIPN, true, IPNSandboxURL},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.endpoint.URL(tt.sandbox))
		})
	}

	assert.Equal(t, "", Endpoint(42).URL(false))
	assert.Equal(t, "endpoint(42)", Endpoint(42).String())
}

func TestNewResponse(t *testing.T) {
	t.Run("JSON object", func(t *testing.T) {
		resp := NewResponse(http.StatusOK, []byte(`{"result":"https://pay.example/abc"}`))

		obj, ok := resp.Object()
		assert.True(t, ok)
		assert.Equal(t, "https://pay.example/abc", obj["result"])
		assert.True(t, resp.OK())
	})

	t.Run("JSON string", func(t *testing.T) {
		resp := NewResponse(http.StatusOK, []byte(`"result=SUCCESS&Status=Paid"`))

		_, ok := resp.Object()
		assert.False(t, ok)
		assert.Equal(t, "result=SUCCESS&Status=Paid", resp.Text())
	})

	t.Run("Plain text", func(t *testing.T) {
		resp := NewResponse(http.StatusCreated, []byte("result=SUCCESS&Status=Paid"))

		assert.Nil(t, resp.Body)
		assert.Equal(t, "result=SUCCESS&Status=Paid", resp.Text())
		assert.False(t, resp.OK())
	})

	t.Run("Empty body", func(t *testing.T) {
		resp := NewResponse(http.StatusNoContent, nil)

		assert.Nil(t, resp.Body)
		assert.Equal(t, "", resp.Format())
	})
}

func TestResponseFormat(t *testing.T) {
	resp := NewResponse(http.StatusBadRequest, []byte(`{"error":"bad request"}`))
	assert.Equal(t, "{\n  \"error\": \"bad request\"\n}", resp.Format())

	resp = NewResponse(http.StatusBadRequest, []byte(`"Invalid token"`))
	assert.Equal(t, "Invalid token", resp.Format())
}

func TestResponseError(t *testing.T) {
	resp := NewResponse(http.StatusBadRequest, []byte(`{"error":"bad request"}`))

	t.Run("Checkout", func(t *testing.T) {
		err := error(NewResponseError(EndpointCheckout, resp))

		assert.ErrorIs(t, err, ErrCheckoutFailed)
		assert.NotErrorIs(t, err, ErrPDTFailed)
		assert.NotErrorIs(t, err, ErrIPNFailed)
		assert.Contains(t, err.Error(), "status 400")
		assert.Contains(t, err.Error(), "bad request")
	})

	t.Run("PDT", func(t *testing.T) {
		err := error(NewResponseError(EndpointPDT, resp))

		assert.ErrorIs(t, err, ErrPDTFailed)
		assert.NotErrorIs(t, err, ErrCheckoutFailed)
	})

	t.Run("IPN", func(t *testing.T) {
		err := error(NewResponseError(EndpointIPN, resp))
		assert.ErrorIs(t, err, ErrIPNFailed)

		var respErr *ResponseError
		assert.True(t, errors.As(err, &respErr))
		assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
	})
}
