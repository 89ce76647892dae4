package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calleviva/trucksim/internal/models"
	"github.com/calleviva/trucksim/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Connect opens a pgx pool from the configured DSN and verifies it.
func Connect(ctx context.Context, cfg *models.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	query := `
        INSERT INTO game_sessions (
            id, player_id, name, game_day, money, reputation,
            current_location, status, stats, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )
    `
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.PlayerID,
		session.Name,
		session.GameDay,
		session.Money,
		session.Reputation,
		session.CurrentLocation,
		session.Status,
		session.Stats,
		now,
		now,
	)
	return err
}

func (r *SessionRepository) Load(ctx context.Context, gameID string) (*models.GameSession, error) {
	query := `
        SELECT id, player_id, name, game_day, money, reputation,
               current_location, status, stats, created_at, updated_at
        FROM game_sessions
        WHERE id = $1
    `
	var session models.GameSession
	err := r.pool.QueryRow(ctx, query, gameID).Scan(
		&session.ID,
		&session.PlayerID,
		&session.Name,
		&session.GameDay,
		&session.Money,
		&session.Reputation,
		&session.CurrentLocation,
		&session.Status,
		&session.Stats,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *models.GameSession) error {
	query := `
        UPDATE game_sessions
        SET game_day = $2, money = $3, reputation = $4,
            current_location = $5, status = $6, stats = $7,
            updated_at = $8
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, query,
		session.ID,
		session.GameDay,
		session.Money,
		session.Reputation,
		session.CurrentLocation,
		session.Status,
		session.Stats,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, gameID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM game_sessions WHERE id = $1`, gameID)
	return err
}
