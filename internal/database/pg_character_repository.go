package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/models"
)

// Compile-time check
var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	logger *zap.Logger
}

// NewPgCharacterRepository creates the postgres-backed character repository.
func NewPgCharacterRepository(logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{
		logger: logger.Named("PgCharacterRepo"),
	}
}

const characterColumns = `
	id, name, occupation, age, gender, birthplace, residence,
	str, con, pow, dex, app, siz, "int", edu, luck,
	hp, max_hp, mp, max_mp, san, max_san, mov, build,
	skills, memo, is_lost, created_at, updated_at`

const createCharacterQuery = `
	INSERT INTO characters (
		name, occupation, age, gender, birthplace, residence,
		str, con, pow, dex, app, siz, "int", edu, luck,
		hp, max_hp, mp, max_mp, san, max_san, mov, build,
		skills, memo, is_lost
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23,
		$24, $25, $26
	)
	RETURNING id, created_at, updated_at`

const getCharacterByIDQuery = `
	SELECT` + characterColumns + `
	FROM characters
	WHERE id = $1`

const listCharactersQuery = `
	SELECT
		c.id, c.name, c.occupation, c.age, c.san, c.max_san, c.is_lost,
		c.created_at, c.updated_at,
		last.play_date AS last_play_date,
		last.title AS last_scenario,
		COALESCE(stats.session_count, 0) AS session_count,
		COALESCE(symptoms.active_symptoms, 0) AS active_symptoms
	FROM characters c
	LEFT JOIN LATERAL (
		SELECT s.play_date, sc.title
		FROM sessions s
		JOIN scenarios sc ON sc.id = s.scenario_id
		WHERE s.character_id = c.id
		ORDER BY s.play_date DESC
		LIMIT 1
	) last ON TRUE
	LEFT JOIN LATERAL (
		SELECT COUNT(*) AS session_count
		FROM sessions s
		WHERE s.character_id = c.id
	) stats ON TRUE
	LEFT JOIN LATERAL (
		SELECT COUNT(*) AS active_symptoms
		FROM insanity_symptoms sym
		WHERE sym.character_id = c.id AND sym.is_recovered = FALSE
	) symptoms ON TRUE
	ORDER BY c.updated_at DESC`

const updateCharacterQuery = `
	UPDATE characters SET
		name = $2, occupation = $3, age = $4, gender = $5, birthplace = $6, residence = $7,
		str = $8, con = $9, pow = $10, dex = $11, app = $12, siz = $13, "int" = $14, edu = $15, luck = $16,
		hp = $17, max_hp = $18, mp = $19, max_mp = $20, san = $21, max_san = $22, mov = $23, build = $24,
		skills = $25, memo = $26, is_lost = $27,
		updated_at = CURRENT_TIMESTAMP
	WHERE id = $1
	RETURNING updated_at`

const updateSheetStateQuery = `
	UPDATE characters
	SET skills = $2, san = $3, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1`

const deleteCharacterQuery = `DELETE FROM characters WHERE id = $1`

func (r *pgCharacterRepository) Create(ctx context.Context, q interfaces.DBTX, c *models.Character) error {
	if c.Skills == nil {
		c.Skills = models.SkillSet{}
	}
	err := q.QueryRow(ctx, createCharacterQuery,
		c.Name, c.Occupation, c.Age, c.Gender, c.Birthplace, c.Residence,
		c.Stats.Str, c.Stats.Con, c.Stats.Pow, c.Stats.Dex, c.Stats.App,
		c.Stats.Siz, c.Stats.Int, c.Stats.Edu, c.Stats.Luck,
		c.DerivedStats.HP, c.DerivedStats.MaxHP, c.DerivedStats.MP, c.DerivedStats.MaxMP,
		c.DerivedStats.San, c.DerivedStats.MaxSan, c.DerivedStats.Mov, c.DerivedStats.Build,
		c.Skills, c.Memo, c.IsLost,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create character", zap.Error(err))
		return fmt.Errorf("failed to create character: %w", err)
	}
	r.logger.Debug("Character created", zap.String("character_id", c.ID.String()))
	return nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, q interfaces.DBTX, id uuid.UUID) (*models.Character, error) {
	var c models.Character
	err := q.QueryRow(ctx, getCharacterByIDQuery, id).Scan(
		&c.ID, &c.Name, &c.Occupation, &c.Age, &c.Gender, &c.Birthplace, &c.Residence,
		&c.Stats.Str, &c.Stats.Con, &c.Stats.Pow, &c.Stats.Dex, &c.Stats.App,
		&c.Stats.Siz, &c.Stats.Int, &c.Stats.Edu, &c.Stats.Luck,
		&c.DerivedStats.HP, &c.DerivedStats.MaxHP, &c.DerivedStats.MP, &c.DerivedStats.MaxMP,
		&c.DerivedStats.San, &c.DerivedStats.MaxSan, &c.DerivedStats.Mov, &c.DerivedStats.Build,
		&c.Skills, &c.Memo, &c.IsLost, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to get character", zap.String("character_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

func (r *pgCharacterRepository) List(ctx context.Context, q interfaces.DBTX) ([]models.CharacterSummary, error) {
	var summaries []models.CharacterSummary
	if err := pgxscan.Select(ctx, q, &summaries, listCharactersQuery); err != nil {
		r.logger.Error("Failed to list characters", zap.Error(err))
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return summaries, nil
}

func (r *pgCharacterRepository) Update(ctx context.Context, q interfaces.DBTX, c *models.Character) error {
	if c.Skills == nil {
		c.Skills = models.SkillSet{}
	}
	err := q.QueryRow(ctx, updateCharacterQuery,
		c.ID,
		c.Name, c.Occupation, c.Age, c.Gender, c.Birthplace, c.Residence,
		c.Stats.Str, c.Stats.Con, c.Stats.Pow, c.Stats.Dex, c.Stats.App,
		c.Stats.Siz, c.Stats.Int, c.Stats.Edu, c.Stats.Luck,
		c.DerivedStats.HP, c.DerivedStats.MaxHP, c.DerivedStats.MP, c.DerivedStats.MaxMP,
		c.DerivedStats.San, c.DerivedStats.MaxSan, c.DerivedStats.Mov, c.DerivedStats.Build,
		c.Skills, c.Memo, c.IsLost,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to update character", zap.String("character_id", c.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update character: %w", err)
	}
	r.logger.Debug("Character updated", zap.String("character_id", c.ID.String()))
	return nil
}

func (r *pgCharacterRepository) UpdateSheetState(ctx context.Context, q interfaces.DBTX, id uuid.UUID, skills models.SkillSet, san int) error {
	tag, err := q.Exec(ctx, updateSheetStateQuery, id, skills, san)
	if err != nil {
		r.logger.Error("Failed to update sheet state", zap.String("character_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to update sheet state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCharacterNotFound
	}
	return nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, q interfaces.DBTX, id uuid.UUID) error {
	tag, err := q.Exec(ctx, deleteCharacterQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.String("character_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCharacterNotFound
	}
	r.logger.Debug("Character deleted", zap.String("character_id", id.String()))
	return nil
}
