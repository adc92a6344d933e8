package gateway

import "context"

// InitializeParams holds the payment initialization request. Amount is
// in whole Naira; conversion to the gateway's minor unit (kobo) is the
// client's responsibility.
type InitializeParams struct {
	Email       string
	Amount      int64
	Reference   string
	Description string
	Metadata    map[string]interface{}
}

// Authorization is the gateway's handle for a pending transaction
type Authorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// PaymentGateway abstracts the external payment provider. Both calls
// are single bounded synchronous round trips; retries belong to the
// caller's transport layer.
type PaymentGateway interface {
	Initialize(ctx context.Context, params InitializeParams) (*Authorization, error)
	// Verify reports whether the transaction for the reference succeeded.
	Verify(ctx context.Context, reference string) (bool, error)
}
