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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerEventInvalid = errors.New("player event conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	// GetForUpdate locks the player row for the lifetime of the given
	// transaction. Every rating mutation goes through this lock so that
	// concurrent match edits touching the same player serialize instead of
	// losing updates.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Player, error)
	UpdateName(ctx context.Context, id int, name string) error
	UpdateRating(ctx context.Context, exec SQLExecutor, id int, rating float64) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (event_id, name, rating)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.EventID,
		player.Name,
		player.Rating,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "players_event_id_fkey" {
				return ErrPlayerEventInvalid
			}
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.EventID,
		&player.Name,
		&player.Rating,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, event_id, name, rating, created_at FROM players WHERE id = $1`
	player, err := r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan player by id %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	query := `SELECT id, event_id, name, rating, created_at FROM players WHERE id = $1 FOR UPDATE`
	player, err := r.scanPlayer(exec.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock player %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Player, error) {
	query := `SELECT id, event_id, name, rating, created_at FROM players WHERE event_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players for event %d: %w", eventID, err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, scanErr := r.scanPlayer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateName(ctx context.Context, id int, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateRating(ctx context.Context, exec SQLExecutor, id int, rating float64) error {
	result, err := exec.ExecContext(ctx, `UPDATE players SET rating = $1 WHERE id = $2`, rating, id)
	if err != nil {
		return fmt.Errorf("failed to update rating for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}
