package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/models"
)

// Compile-time check
var _ interfaces.ScenarioRepository = (*pgScenarioRepository)(nil)

type pgScenarioRepository struct {
	logger *zap.Logger
}

// NewPgScenarioRepository creates the postgres-backed scenario repository.
func NewPgScenarioRepository(logger *zap.Logger) interfaces.ScenarioRepository {
	return &pgScenarioRepository{
		logger: logger.Named("PgScenarioRepo"),
	}
}

const findScenarioByTitleQuery = `
	SELECT id, title, author, description, created_at
	FROM scenarios
	WHERE title = $1
	ORDER BY created_at ASC
	LIMIT 1`

const createScenarioQuery = `
	INSERT INTO scenarios (title, author, description)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`

func (r *pgScenarioRepository) FindByTitle(ctx context.Context, q interfaces.DBTX, title string) (*models.Scenario, error) {
	var s models.Scenario
	err := q.QueryRow(ctx, findScenarioByTitleQuery, title).Scan(
		&s.ID, &s.Title, &s.Author, &s.Description, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrScenarioNotFound
		}
		r.logger.Error("Failed to find scenario by title", zap.String("title", title), zap.Error(err))
		return nil, fmt.Errorf("failed to find scenario: %w", err)
	}
	return &s, nil
}

func (r *pgScenarioRepository) Create(ctx context.Context, q interfaces.DBTX, s *models.Scenario) error {
	err := q.QueryRow(ctx, createScenarioQuery, s.Title, s.Author, s.Description).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create scenario", zap.String("title", s.Title), zap.Error(err))
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	r.logger.Debug("Scenario created", zap.String("scenario_id", s.ID.String()))
	return nil
}
