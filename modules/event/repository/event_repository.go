package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"rite-api/core/database"
	"rite-api/core/logger"
	"rite-api/modules/event/entity"
)

const eventColumns = `id, organizer_id, name, slug, event_date, venue, description, hashtag,
       deadlines, payment, guest_limit_per_dj, phase, cancel_reason, created_at, updated_at`

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetByOrganizerID(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Event, error)
	UpdatePhase(ctx context.Context, id uuid.UUID, phase entity.EventPhase, cancelReason *string) (*entity.Event, error)
}

type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (organizer_id, name, slug, event_date, venue, description, hashtag,
		                    deadlines, payment, guest_limit_per_dj, phase)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.OrganizerID, event.Name, event.Slug, event.Date, event.Venue,
		event.Description, event.Hashtag, event.Deadlines, event.Payment,
		event.GuestLimitPerDJ, event.Phase)
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetByOrganizerID(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, organizerID)
	if err != nil {
		logger.Error("EventRepository:GetByOrganizerID", err)
		return nil, err
	}

	return events, nil
}

// UpdateFields applies a sparse patch. Only columns present in the map are
// written; the map is built by the service from fields the caller actually
// supplied, so an absent field can never be persisted as null by accident.
func (r *EventRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Event, error) {
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

	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "), eventColumns)

	var updated entity.Event
	err := r.DB.GetContext(ctx, &updated, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:UpdateFields", err)
		return nil, err
	}

	return &updated, nil
}

func (r *EventRepository) UpdatePhase(ctx context.Context, id uuid.UUID, phase entity.EventPhase, cancelReason *string) (*entity.Event, error) {
	query := `
		UPDATE events SET phase = $2, cancel_reason = COALESCE($3, cancel_reason), updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns

	var updated entity.Event
	err := r.DB.GetContext(ctx, &updated, query, id, phase, cancelReason)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:UpdatePhase", err)
		return nil, err
	}

	return &updated, nil
}
