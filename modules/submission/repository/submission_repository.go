package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"rite-api/core/database"
	"rite-api/core/logger"
	"rite-api/modules/submission/entity"
)

const submissionColumns = `id, event_id, timeslot_id, unique_link, promo_materials,
       guest_list, payment_info, submitted_at, last_updated_at`

type SubmissionRepositoryInterface interface {
	GetByTimeslotID(ctx context.Context, timeslotID uuid.UUID) (*entity.Submission, error)
	Upsert(ctx context.Context, sub *entity.Submission) (*entity.Submission, error)
	CountCompleteByEventID(ctx context.Context, eventID uuid.UUID) (int, error)
}

type SubmissionRepository struct {
	DB database.IDatabase
}

func NewSubmissionRepository(db database.IDatabase) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) GetByTimeslotID(ctx context.Context, timeslotID uuid.UUID) (*entity.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE timeslot_id = $1`

	var sub entity.Submission
	err := r.DB.GetContext(ctx, &sub, query, timeslotID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SubmissionRepository:GetByTimeslotID", err)
		return nil, err
	}

	return &sub, nil
}

// Upsert inserts or replaces the materials for a timeslot in one statement.
// The unique index on timeslot_id serializes concurrent redemptions of the
// same token; two racing saves cannot both insert. submitted_at is only ever
// written by the insert arm, so re-submissions keep the original value.
func (r *SubmissionRepository) Upsert(ctx context.Context, sub *entity.Submission) (*entity.Submission, error) {
	query := `
		INSERT INTO submissions (event_id, timeslot_id, unique_link, promo_materials, guest_list, payment_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (timeslot_id) DO UPDATE SET
			promo_materials = EXCLUDED.promo_materials,
			guest_list      = EXCLUDED.guest_list,
			payment_info    = EXCLUDED.payment_info,
			last_updated_at = now()
		RETURNING ` + submissionColumns

	var saved entity.Submission
	err := r.DB.GetContext(ctx, &saved, query,
		sub.EventID, sub.TimeslotID, sub.UniqueLink,
		sub.PromoMaterials, sub.GuestList, sub.PaymentInfo)
	if err != nil {
		logger.Error("SubmissionRepository:Upsert", err)
		return nil, err
	}

	return &saved, nil
}

// CountCompleteByEventID counts timeslot-covering submissions that carry
// both promo files and guest entries. Used by the finalize precondition;
// derived directly from rows, not from timeslot.submission_id.
func (r *SubmissionRepository) CountCompleteByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM submissions
		WHERE event_id = $1
		  AND jsonb_array_length(promo_materials->'files') > 0
		  AND jsonb_array_length(guest_list) > 0
	`

	var count int
	err := r.DB.GetContext(ctx, &count, query, eventID)
	if err != nil {
		logger.Error("SubmissionRepository:CountCompleteByEventID", err)
		return 0, err
	}
	return count, nil
}
