package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rite-api/core/database"
	"rite-api/core/logger"
	"rite-api/modules/timeslot/entity"
)

const timeslotColumns = `id, event_id, start_time, end_time, dj_name, dj_handle,
       submission_token, submission_id, created_at, updated_at`

type TimeslotRepositoryInterface interface {
	Create(ctx context.Context, slot *entity.Timeslot) (*entity.Timeslot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Timeslot, error)
	GetByToken(ctx context.Context, token string) (*entity.Timeslot, error)
	CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Timeslot, error)
	SetSubmissionRef(ctx context.Context, id, submissionID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TimeslotRepository struct {
	DB database.IDatabase
}

func NewTimeslotRepository(db database.IDatabase) *TimeslotRepository {
	return &TimeslotRepository{DB: db}
}

// IsUniqueViolation reports whether err is the postgres unique_violation,
// which is how a submission-token collision surfaces.
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

func (r *TimeslotRepository) Create(ctx context.Context, slot *entity.Timeslot) (*entity.Timeslot, error) {
	query := `
		INSERT INTO timeslots (event_id, start_time, end_time, dj_name, dj_handle, submission_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + timeslotColumns

	var created entity.Timeslot
	err := r.DB.GetContext(ctx, &created, query,
		slot.EventID, slot.StartTime, slot.EndTime, slot.DJName, slot.DJHandle, slot.SubmissionToken)
	if err != nil {
		if !IsUniqueViolation(err) {
			logger.Error("TimeslotRepository:Create", err)
		}
		return nil, err
	}

	return &created, nil
}

func (r *TimeslotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
	query := `SELECT ` + timeslotColumns + ` FROM timeslots WHERE id = $1`

	var slot entity.Timeslot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TimeslotRepository:GetByID", err)
		return nil, err
	}

	return &slot, nil
}

func (r *TimeslotRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Timeslot, error) {
	query := `SELECT ` + timeslotColumns + ` FROM timeslots WHERE event_id = $1 ORDER BY start_time`

	var slots []entity.Timeslot
	err := r.DB.SelectContext(ctx, &slots, query, eventID)
	if err != nil {
		logger.Error("TimeslotRepository:GetByEventID", err)
		return nil, err
	}

	return slots, nil
}

func (r *TimeslotRepository) GetByToken(ctx context.Context, token string) (*entity.Timeslot, error) {
	query := `SELECT ` + timeslotColumns + ` FROM timeslots WHERE submission_token = $1`

	var slot entity.Timeslot
	err := r.DB.GetContext(ctx, &slot, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TimeslotRepository:GetByToken", err)
		return nil, err
	}

	return &slot, nil
}

func (r *TimeslotRepository) CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM timeslots WHERE event_id = $1`, eventID)
	if err != nil {
		logger.Error("TimeslotRepository:CountByEventID", err)
		return 0, err
	}
	return count, nil
}

func (r *TimeslotRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Timeslot, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClauses := make([]string, 0, len(cols)+1)
	args := []any{id}
	for i, col := range cols {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i+2))
		args = append(args, fields[col])
	}
	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(`UPDATE timeslots SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "), timeslotColumns)

	var updated entity.Timeslot
	err := r.DB.GetContext(ctx, &updated, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TimeslotRepository:UpdateFields", err)
		return nil, err
	}

	return &updated, nil
}

func (r *TimeslotRepository) SetSubmissionRef(ctx context.Context, id, submissionID uuid.UUID) error {
	query := `UPDATE timeslots SET submission_id = $2, updated_at = now() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, submissionID); err != nil {
		logger.Error("TimeslotRepository:SetSubmissionRef", err)
		return err
	}
	return nil
}

func (r *TimeslotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM timeslots WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("TimeslotRepository:Delete", err)
		return err
	}
	return nil
}
