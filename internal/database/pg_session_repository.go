package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/models"
)

// Compile-time check
var _ interfaces.SessionRepository = (*pgSessionRepository)(nil)

type pgSessionRepository struct {
	logger *zap.Logger
}

// NewPgSessionRepository creates the postgres-backed session repository.
func NewPgSessionRepository(logger *zap.Logger) interfaces.SessionRepository {
	return &pgSessionRepository{
		logger: logger.Named("PgSessionRepo"),
	}
}

const createSessionQuery = `
	INSERT INTO sessions (character_id, scenario_id, kp_name, play_date, participants, memo)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`

const listSessionsByCharacterQuery = `
	SELECT
		s.id, s.character_id, s.scenario_id, s.kp_name, s.play_date,
		s.participants, s.memo, s.created_at,
		sc.id, sc.title, sc.author, sc.description, sc.created_at
	FROM sessions s
	JOIN scenarios sc ON sc.id = s.scenario_id
	WHERE s.character_id = $1
	ORDER BY s.play_date DESC, s.created_at DESC`

const deleteSessionQuery = `DELETE FROM sessions WHERE id = $1`

const deleteSessionsByCharacterQuery = `DELETE FROM sessions WHERE character_id = $1`

func (r *pgSessionRepository) Create(ctx context.Context, q interfaces.DBTX, s *models.Session) error {
	err := q.QueryRow(ctx, createSessionQuery,
		s.CharacterID, s.ScenarioID, s.KPName, s.PlayDate, s.Participants, s.Memo,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create session",
			zap.String("character_id", s.CharacterID.String()), zap.Error(err))
		return fmt.Errorf("failed to create session: %w", err)
	}
	r.logger.Debug("Session created", zap.String("session_id", s.ID.String()))
	return nil
}

func (r *pgSessionRepository) ListByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.Session, error) {
	rows, err := q.Query(ctx, listSessionsByCharacterQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to list sessions",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		var sc models.Scenario
		if err := rows.Scan(
			&s.ID, &s.CharacterID, &s.ScenarioID, &s.KPName, &s.PlayDate,
			&s.Participants, &s.Memo, &s.CreatedAt,
			&sc.ID, &sc.Title, &sc.Author, &sc.Description, &sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		s.Scenario = &sc
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return sessions, nil
}

func (r *pgSessionRepository) Delete(ctx context.Context, q interfaces.DBTX, id uuid.UUID) error {
	tag, err := q.Exec(ctx, deleteSessionQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrSessionNotFound
	}
	r.logger.Debug("Session deleted", zap.String("session_id", id.String()))
	return nil
}

func (r *pgSessionRepository) DeleteByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	if _, err := q.Exec(ctx, deleteSessionsByCharacterQuery, characterID); err != nil {
		r.logger.Error("Failed to delete sessions for character",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
