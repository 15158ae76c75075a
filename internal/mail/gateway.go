// Package mail contains the outbound email machinery: the transport gateway
// contract, an asynchronous dispatcher that keeps mail off the request path,
// and the verification message builder.
package mail

import "context"

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Gateway is the transport that actually delivers mail. It is consumed, not
// implemented, by the account core; the production implementation is the SES
// client under internal/platform/awsx.
type Gateway interface {
	// Send delivers the message, returning an error on transport failure.
	// Errors are non-fatal to the caller's business operation: delivery is
	// best-effort.
	Send(ctx context.Context, msg Message) error
}
