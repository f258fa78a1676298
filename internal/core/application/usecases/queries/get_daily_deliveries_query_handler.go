package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetDailyDeliveriesQueryHandler reads the day's deliveries straight from
// the database, bypassing the aggregate layer.
type GetDailyDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDailyDeliveriesQueryHandler creates a handler for day-view queries.
func NewGetDailyDeliveriesQueryHandler(db *gorm.DB) GetDailyDeliveriesQueryHandler {
	return GetDailyDeliveriesQueryHandler{db: db}
}

// Handle executes the query. The day bucket is [00:00:00, 24:00:00) UTC;
// rows come back in insertion order.
func (h GetDailyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDailyDeliveriesQuery,
) ([]GetDailyDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	day := query.Day().UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	deliveries := make([]GetDailyDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sender,
			recipient,
			phone,
			address,
			slot,
			predicted_slot,
			confidence,
			status,
			proof_path,
			created_at
		FROM deliveries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY id
	`, start.Unix(), end.Unix()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetDailyDeliveriesQueryResponse
		var createdAt int64

		err = rows.Scan(
			&resp.ID,
			&resp.Sender,
			&resp.Recipient,
			&resp.Phone,
			&resp.Address,
			&resp.Slot,
			&resp.PredictedSlot,
			&resp.Confidence,
			&resp.Status,
			&resp.ProofPath,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp.CreatedAt = time.Unix(createdAt, 0).UTC()
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
