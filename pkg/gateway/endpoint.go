package gateway

import "fmt"

// Endpoint identifies one of the three gateway operations.
type Endpoint int

const (
	EndpointCheckout Endpoint = iota
	EndpointPDT
	EndpointIPN
)

const (
	CheckoutProductionURL = "https://endpoints.yenepay.com/api/urlgenerate/getcheckouturl/"
	CheckoutSandboxURL    = "https://testapi.yenepay.com/api/urlgenerate/getcheckouturl/"

	PDTProductionURL = "https://endpoints.yenepay.com/api/verify/pdt/"
	PDTSandboxURL    = "https://testapi.yenepay.com/api/verify/pdt/"

	IPNProductionURL = "https://endpoints.yenepay.com/api/verify/ipn/"
	IPNSandboxURL    = "https://testapi.yenepay.com/api/verify/ipn/"
)

// BaseURLs maps an endpoint to its production and sandbox URLs.
type BaseURLs map[Endpoint][2]string

// DefaultBaseURLs are the public YenePay endpoints, production first.
var DefaultBaseURLs = BaseURLs{
	EndpointCheckout: {CheckoutProductionURL, CheckoutSandboxURL},
	EndpointPDT:      {PDTProductionURL, PDTSandboxURL},
	EndpointIPN:      {IPNProductionURL, IPNSandboxURL},
}

// URL returns the endpoint URL for the selected environment.
func (e Endpoint) URL(sandbox bool) string {
	return DefaultBaseURLs.URL(e, sandbox)
}

func (u BaseURLs) URL(e Endpoint, sandbox bool) string {
	urls, ok := u[e]
	if !ok {
		return ""
	}
	if sandbox {
		return urls[1]
	}
	return urls[0]
}

func (e Endpoint) String() string {
	switch e {
	case EndpointCheckout:
		return "checkout"
	case EndpointPDT:
		return "pdt"
	case EndpointIPN:
		return "ipn"
	default:
		return fmt.Sprintf("endpoint(%d)", int(e))
	}
}
