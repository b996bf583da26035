package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirohaya/racket-hero/models"
	"github.com/lib/pq"
)

var (
	ErrOrganizerNotFound     = errors.New("event organizer not found")
	ErrOrganizerConflict     = errors.New("user is already an organizer of this event")
	ErrOrganizerEventInvalid = errors.New("organizer event conflict or invalid")
	ErrOrganizerUserInvalid  = errors.New("organizer user conflict or invalid")
)

type OrganizerRepository interface {
	Add(ctx context.Context, organizer *models.EventOrganizer) error
	ListByEvent(ctx context.Context, eventID int) ([]*models.EventOrganizer, error)
	IsOrganizer(ctx context.Context, eventID, userID int) (bool, error)
	Remove(ctx context.Context, eventID, userID int) error
}

type postgresOrganizerRepository struct {
	db *sql.DB
}

func NewPostgresOrganizerRepository(db *sql.DB) OrganizerRepository {
	return &postgresOrganizerRepository{db: db}
}

func (r *postgresOrganizerRepository) Add(ctx context.Context, organizer *models.EventOrganizer) error {
	query := `
		INSERT INTO event_organizers (event_id, user_id, creator)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		organizer.EventID,
		organizer.UserID,
		organizer.Creator,
	).Scan(&organizer.ID, &organizer.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "event_organizers_event_id_user_id_key":
				return ErrOrganizerConflict
			case "event_organizers_event_id_fkey":
				return ErrOrganizerEventInvalid
			case "event_organizers_user_id_fkey":
				return ErrOrganizerUserInvalid
			}
		}
		return fmt.Errorf("failed to insert event organizer: %w", err)
	}
	return nil
}

func (r *postgresOrganizerRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.EventOrganizer, error) {
	// Join users so handlers can render organizer names without a second
	// round trip.
	query := `
		SELECT eo.id, eo.event_id, eo.user_id, eo.creator, eo.created_at,
		       u.id, u.email, u.name, u.role, u.active, u.created_at, u.updated_at
		FROM event_organizers eo
		JOIN users u ON eo.user_id = u.id
		WHERE eo.event_id = $1
		ORDER BY eo.creator DESC, eo.id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizers for event %d: %w", eventID, err)
	}
	defer rows.Close()

	organizers := make([]*models.EventOrganizer, 0)
	for rows.Next() {
		var eo models.EventOrganizer
		var user models.User
		if scanErr := rows.Scan(
			&eo.ID, &eo.EventID, &eo.UserID, &eo.Creator, &eo.CreatedAt,
			&user.ID, &user.Email, &user.Name, &user.Role, &user.Active, &user.CreatedAt, &user.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan organizer row: %w", scanErr)
		}
		eo.User = &user
		organizers = append(organizers, &eo)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during organizer rows iteration: %w", err)
	}
	return organizers, nil
}

func (r *postgresOrganizerRepository) IsOrganizer(ctx context.Context, eventID, userID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_organizers WHERE event_id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check organizer for event %d: %w", eventID, err)
	}
	return exists, nil
}

func (r *postgresOrganizerRepository) Remove(ctx context.Context, eventID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM event_organizers WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove organizer from event %d: %w", eventID, err)
	}
	return checkAffectedRows(result, ErrOrganizerNotFound)
}
