package commands

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/ports"
)

// VerifyDeliveryCommandHandler handles the business logic for closing a
// delivery: code match, proof persistence, and the compare-and-set status
// transition.
type VerifyDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	proofStore ports.ProofStore
}

// NewVerifyDeliveryCommandHandler creates a handler for verification
// operations.
func NewVerifyDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory, proofStore ports.ProofStore,
) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
		proofStore: proofStore,
	}
}

// Handle processes the verification command.
//
// A code mismatch returns delivery.ErrInvalidCode and leaves the record
// untouched. On match the proof artifact (when supplied) is staged, the
// Scheduled -> Delivered transition is applied as a compare-and-set, and
// only then is the artifact committed to its recorded path. A rejected
// verification (already Delivered at read time, or a lost concurrent race,
// both surfaced as delivery.ErrAlreadyDelivered) therefore never replaces
// the artifact the winning verification stored.
func (h *VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	record, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !record.Code().Matches(cmd.PresentedCode()) {
		return delivery.ErrInvalidCode
	}

	// Reject non-verifiable records before touching any artifact.
	if _, err = record.Status().Deliver(); err != nil {
		return err
	}

	var proofPath *string
	var staged ports.StagedProof
	if cmd.Proof() != nil {
		staged, err = h.proofStore.Stage(record.ID(), cmd.Proof())
		if err != nil {
			return err
		}
		defer staged.Discard()

		path := staged.Path()
		proofPath = &path
	}

	if err = record.MarkDelivered(proofPath); err != nil {
		return err
	}

	if err = repo.UpdateStatus(ctx, record, delivery.Scheduled); err != nil {
		if errors.Is(err, delivery.ErrStatusConflict) {
			return delivery.ErrAlreadyDelivered
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if staged != nil {
		return staged.Commit()
	}
	return nil
}
