package repository

import (
	"context"
	"errors"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionLookup resolves a scheduled performance.
type SessionLookup interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionLookup {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `
		SELECT s.id, s.starts_at, s.turno, p.id, p.title, p.subtitle, p.color, p.image_path
		FROM sessions s
		JOIN plays p ON p.id = s.play_id
		WHERE s.id = $1
	`

	var session entity.Session
	var turno string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.StartsAt,
		&turno,
		&session.Play.ID,
		&session.Play.Title,
		&session.Play.Subtitle,
		&session.Play.Color,
		&session.Play.ImagePath,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find session",
			zap.Error(err),
			zap.String("session_id", id),
		)
		return nil, fmt.Errorf("find session %s: %w", id, err)
	}

	session.Turno, err = entity.ParseTurno(turno)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return &session, nil
}
