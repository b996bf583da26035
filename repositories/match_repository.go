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
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchEventInvalid  = errors.New("match event conflict or invalid")
	ErrMatchPlayerInvalid = errors.New("match player conflict or invalid")
	ErrMatchWinnerInvalid = errors.New("match winner conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Match, error)
	UpdateWinner(ctx context.Context, exec SQLExecutor, id int, winnerID *int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (event_id, player_1_id, player_2_id, winner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := exec.QueryRowContext(ctx, query,
		match.EventID,
		match.Player1ID,
		match.Player2ID,
		match.WinnerID,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, event_id, player_1_id, player_2_id, winner_id, created_at, updated_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.EventID,
		&match.Player1ID,
		&match.Player2ID,
		&match.WinnerID,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Match, error) {
	// Join players so listings can show names and current ratings.
	query := `
		SELECT m.id, m.event_id, m.player_1_id, m.player_2_id, m.winner_id, m.created_at, m.updated_at,
		       p1.name, p1.rating, p2.name, p2.rating, w.name
		FROM matches m
		JOIN players p1 ON m.player_1_id = p1.id
		JOIN players p2 ON m.player_2_id = p2.id
		LEFT JOIN players w ON m.winner_id = w.id
		WHERE m.event_id = $1
		ORDER BY m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for event %d: %w", eventID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		var p1Name, p2Name string
		var p1Rating, p2Rating float64
		var winnerName *string
		if scanErr := rows.Scan(
			&match.ID,
			&match.EventID,
			&match.Player1ID,
			&match.Player2ID,
			&match.WinnerID,
			&match.CreatedAt,
			&match.UpdatedAt,
			&p1Name,
			&p1Rating,
			&p2Name,
			&p2Rating,
			&winnerName,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		match.Player1Name = &p1Name
		match.Player2Name = &p2Name
		match.Player1Rating = &p1Rating
		match.Player2Rating = &p2Rating
		match.WinnerName = winnerName
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateWinner(ctx context.Context, exec SQLExecutor, id int, winnerID *int) error {
	query := `UPDATE matches SET winner_id = $1, updated_at = NOW() WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, winnerID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_event_id_fkey":
			return ErrMatchEventInvalid
		case "matches_player_1_id_fkey", "matches_player_2_id_fkey":
			return ErrMatchPlayerInvalid
		case "matches_winner_id_fkey":
			return ErrMatchWinnerInvalid
		}
	}
	return err
}
