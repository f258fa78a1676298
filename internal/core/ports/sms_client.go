package ports

import "context"

// SMSClient is the out-of-band channel that carries confirmation codes to
// recipients. The transport (Twilio, log, test double) lives behind this
// boundary; the core only records outcomes, it never propagates a send
// failure as a booking failure.
type SMSClient interface {
	// Send dispatches one message and returns the channel's delivery
	// receipt identifier.
	Send(ctx context.Context, phone, body string) (receiptID string, err error)
}
