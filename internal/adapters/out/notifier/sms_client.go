// Package notifier provides SMS channel implementations behind the
// ports.SMSClient boundary. The real carrier integration (e.g. Twilio) is an
// external collaborator; LogSMSClient stands in for it in development and
// keeps the dispatch pipeline exercised end to end.
package notifier

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogSMSClient logs outgoing messages instead of sending them and returns a
// synthetic receipt identifier per message.
type LogSMSClient struct {
	logger *slog.Logger
}

// NewLogSMSClient creates a logging SMS client.
func NewLogSMSClient(logger *slog.Logger) *LogSMSClient {
	return &LogSMSClient{logger: logger.With("component", "sms_client")}
}

// Send logs the message and returns a fresh receipt id.
func (c *LogSMSClient) Send(ctx context.Context, phone, body string) (string, error) {
	receiptID := uuid.NewString()
	c.logger.InfoContext(ctx, "SMS dispatched", "phone", phone, "receipt_id", receiptID, "body_len", len(body))
	return receiptID, nil
}
