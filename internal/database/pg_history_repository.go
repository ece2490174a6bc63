package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/models"
)

// Compile-time check
var _ interfaces.HistoryRepository = (*pgHistoryRepository)(nil)

type pgHistoryRepository struct {
	logger *zap.Logger
}

// NewPgHistoryRepository creates the postgres-backed history repository
// covering skill growth, sanity loss and insanity symptom rows.
func NewPgHistoryRepository(logger *zap.Logger) interfaces.HistoryRepository {
	return &pgHistoryRepository{
		logger: logger.Named("PgHistoryRepo"),
	}
}

const createSkillHistoryQuery = `
	INSERT INTO skill_histories (character_id, session_id, skill_name, old_value, new_value, reason)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`

const createSanityHistoryQuery = `
	INSERT INTO sanity_histories (character_id, session_id, old_value, new_value, reason)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

const createSymptomQuery = `
	INSERT INTO insanity_symptoms (character_id, session_id, symptom_type, symptom_name, description, is_recovered, recovered_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at`

const listSkillHistoryQuery = `
	SELECT id, character_id, session_id, skill_name, old_value, new_value, reason, created_at
	FROM skill_histories
	WHERE character_id = $1
	ORDER BY created_at ASC`

const listSanityHistoryQuery = `
	SELECT id, character_id, session_id, old_value, new_value, reason, created_at
	FROM sanity_histories
	WHERE character_id = $1
	ORDER BY created_at ASC`

const listSymptomsQuery = `
	SELECT id, character_id, session_id, symptom_type, symptom_name, description,
		is_recovered, recovered_at, created_at
	FROM insanity_symptoms
	WHERE character_id = $1
	ORDER BY created_at ASC`

func (r *pgHistoryRepository) CreateSkillHistory(ctx context.Context, q interfaces.DBTX, h *models.SkillHistory) error {
	err := q.QueryRow(ctx, createSkillHistoryQuery,
		h.CharacterID, h.SessionID, h.SkillName, h.OldValue, h.NewValue, h.Reason,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create skill history", zap.Error(err))
		return fmt.Errorf("failed to create skill history: %w", err)
	}
	return nil
}

func (r *pgHistoryRepository) CreateSanityHistory(ctx context.Context, q interfaces.DBTX, h *models.SanityHistory) error {
	err := q.QueryRow(ctx, createSanityHistoryQuery,
		h.CharacterID, h.SessionID, h.OldValue, h.NewValue, h.Reason,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create sanity history", zap.Error(err))
		return fmt.Errorf("failed to create sanity history: %w", err)
	}
	return nil
}

func (r *pgHistoryRepository) CreateSymptom(ctx context.Context, q interfaces.DBTX, s *models.InsanitySymptom) error {
	err := q.QueryRow(ctx, createSymptomQuery,
		s.CharacterID, s.SessionID, s.SymptomType, s.SymptomName, s.Description,
		s.IsRecovered, s.RecoveredAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create insanity symptom", zap.Error(err))
		return fmt.Errorf("failed to create insanity symptom: %w", err)
	}
	return nil
}

func (r *pgHistoryRepository) ListSkillByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.SkillHistory, error) {
	var rows []models.SkillHistory
	if err := pgxscan.Select(ctx, q, &rows, listSkillHistoryQuery, characterID); err != nil {
		r.logger.Error("Failed to list skill histories",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list skill histories: %w", err)
	}
	return rows, nil
}

func (r *pgHistoryRepository) ListSanityByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.SanityHistory, error) {
	var rows []models.SanityHistory
	if err := pgxscan.Select(ctx, q, &rows, listSanityHistoryQuery, characterID); err != nil {
		r.logger.Error("Failed to list sanity histories",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list sanity histories: %w", err)
	}
	return rows, nil
}

func (r *pgHistoryRepository) ListSymptomsByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.InsanitySymptom, error) {
	var rows []models.InsanitySymptom
	if err := pgxscan.Select(ctx, q, &rows, listSymptomsQuery, characterID); err != nil {
		r.logger.Error("Failed to list insanity symptoms",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list insanity symptoms: %w", err)
	}
	return rows, nil
}

func (r *pgHistoryRepository) DeleteSkillByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM skill_histories WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("failed to delete skill histories: %w", err)
	}
	return nil
}

func (r *pgHistoryRepository) DeleteSanityByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM sanity_histories WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("failed to delete sanity histories: %w", err)
	}
	return nil
}

func (r *pgHistoryRepository) DeleteSymptomsByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM insanity_symptoms WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("failed to delete insanity symptoms: %w", err)
	}
	return nil
}
