package pdt

import (
	"strings"

	"yenepay-go/internal/utils"
)

// Response is a parsed PDT answer. Keys are whatever the gateway returned,
// converted to snake_case ("BuyerID" -> "buyer_id").
type Response struct {
	PDT    *PDT
	Raw    string
	Fields map[string]string
}

// Parse extracts every key=value pair of body. Later duplicates win.
func Parse(body string, pdt *PDT) *Response {
	r := &Response{
		PDT:    pdt,
		Raw:    body,
		Fields: make(map[string]string),
	}

	for _, kv := range utils.ParseKeyValues(body) {
		r.Fields[utils.ToSnakeCase(kv.Key)] = kv.Value
	}

	return r
}

func (r *Response) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

func (r *Response) Result() string          { return r.Fields["result"] }
func (r *Response) Status() string          { return r.Fields["status"] }
func (r *Response) BuyerID() string         { return r.Fields["buyer_id"] }
func (r *Response) TotalAmount() string     { return r.Fields["total_amount"] }
func (r *Response) MerchantOrderID() string { return r.Fields["merchant_order_id"] }
func (r *Response) TransactionID() string   { return r.Fields["transaction_id"] }

// Completed reports a successful query for an order that has been paid.
func (r *Response) Completed() bool {
	return strings.EqualFold(r.Result(), "SUCCESS") && strings.EqualFold(r.Status(), "Paid")
}
