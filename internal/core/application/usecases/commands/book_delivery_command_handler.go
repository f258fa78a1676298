package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/notification"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// BookDeliveryResult reports the outcome of a successful booking: the
// store-assigned identifier, the raw confirmation code for the booking
// initiator's fallback channel, the queued outbox entry, and the advisor's
// recommendation when one was captured.
type BookDeliveryResult struct {
	DeliveryID     delivery.ID
	Code           string
	NotificationID kernel.UUID
	PredictedSlot  *delivery.Slot
	Confidence     *float64
}

// BookDeliveryCommandHandler handles the business logic for booking.
// Captures a slot recommendation (best effort), generates a confirmation
// code, and commits the delivery record together with its pending outbox
// notification in a single transaction.
type BookDeliveryCommandHandler struct {
	uowFactory    BookingUoWFactory
	advisor       ports.SlotAdvisor
	codeGenerator services.CodeGenerator
	logger        *slog.Logger
}

// NewBookDeliveryCommandHandler creates a handler for booking operations.
func NewBookDeliveryCommandHandler(
	uowFactory BookingUoWFactory,
	advisor ports.SlotAdvisor,
	codeGenerator services.CodeGenerator,
	logger *slog.Logger,
) BookDeliveryCommandHandler {
	return BookDeliveryCommandHandler{
		uowFactory:    uowFactory,
		advisor:       advisor,
		codeGenerator: codeGenerator,
		logger:        logger,
	}
}

// Handle processes the booking command.
//
// The advisor call is absorbed on any error: the booking proceeds with the
// sender's chosen slot and no recommendation recorded. The delivery record
// and the notification row commit atomically; dispatching the notification
// is deferred to the outbox job so a dead SMS channel can never lose a
// booking.
func (h *BookDeliveryCommandHandler) Handle(
	ctx context.Context, cmd BookDeliveryCommand,
) (BookDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return BookDeliveryResult{}, err
	}

	var rec *delivery.Recommendation
	predictedSlot, confidence, err := h.advisor.Recommend(cmd.Area(), cmd.Weekday(), cmd.PastSuccessRate())
	if err != nil {
		h.logger.WarnContext(ctx, "slot recommendation unavailable, booking with chosen slot", "error", err)
	} else {
		rec = &delivery.Recommendation{Slot: predictedSlot, Confidence: confidence}
	}

	code, err := h.codeGenerator.Generate()
	if err != nil {
		return BookDeliveryResult{}, err
	}

	booked, err := delivery.NewDelivery(
		cmd.Sender(), cmd.Recipient(), cmd.Phone(), cmd.Address(),
		cmd.Slot(), code, rec, time.Now().UTC(),
	)
	if err != nil {
		return BookDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return BookDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, booked); err != nil {
		return BookDeliveryResult{}, err
	}

	entry, err := notification.NewNotification(
		kernel.NewUUID(),
		booked.ID(),
		booked.Phone(),
		confirmationBody(booked, code),
		booked.CreatedAt(),
	)
	if err != nil {
		return BookDeliveryResult{}, err
	}

	if err = uow.NotificationRepository().Add(ctx, entry); err != nil {
		return BookDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BookDeliveryResult{}, err
	}

	result := BookDeliveryResult{
		DeliveryID:     booked.ID(),
		Code:           code.String(),
		NotificationID: entry.ID(),
	}
	if rec != nil {
		result.PredictedSlot = &rec.Slot
		result.Confidence = &rec.Confidence
	}

	return result, nil
}

// confirmationBody renders the SMS text carrying the confirmation code.
func confirmationBody(booked *delivery.Delivery, code delivery.ConfirmationCode) string {
	return fmt.Sprintf(
		"Your delivery #%d is booked for the %s slot. Confirmation code: %s",
		booked.ID(), booked.Slot(), code,
	)
}
