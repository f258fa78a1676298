package commands

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/ports"
)

// DispatchNotificationsResult reports how many outbox entries a single pump
// handed to the SMS channel and how many failed and stayed retryable.
type DispatchNotificationsResult struct {
	Sent   int
	Failed int
}

// DispatchNotificationsCommandHandler pumps the notification outbox through
// the SMS channel. A send failure marks the entry failed and moves on; the
// entry stays in the outbox for a later pump.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	smsClient  ports.SMSClient
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates a handler for outbox
// dispatch operations.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	smsClient ports.SMSClient,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		smsClient:  smsClient,
		logger:     logger,
	}
}

// Handle processes one outbox pump. The batch is read and sent without an
// open transaction, so a slow carrier never holds database locks; outcomes
// are then recorded in one short transaction. The pump itself never fails
// because a single message could not be sent, and an outcome write that is
// lost after a successful send only means the entry is retried.
func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context, cmd DispatchNotificationsCommand,
) (DispatchNotificationsResult, error) {
	var result DispatchNotificationsResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()

	entries, err := uow.NotificationRepository().GetUndispatched(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}
	if len(entries) == 0 {
		return result, nil
	}

	for _, entry := range entries {
		receiptID, sendErr := h.smsClient.Send(ctx, entry.Phone(), entry.Body())
		if sendErr != nil {
			h.logger.WarnContext(ctx, "notification dispatch failed",
				"notification_id", entry.ID().String(),
				"delivery_id", entry.DeliveryID(),
				"error", sendErr,
			)
			if err = entry.MarkFailed(); err != nil {
				return result, err
			}
			result.Failed++
		} else {
			if err = entry.MarkSent(receiptID, time.Now()); err != nil {
				return result, err
			}
			result.Sent++
		}
	}

	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	for _, entry := range entries {
		if err = repo.Update(ctx, entry); err != nil {
			return result, err
		}
	}

	return result, uow.Commit(ctx)
}
