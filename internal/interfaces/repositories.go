// Package interfaces declares the persistence and storage boundaries of the
// service. Repositories accept a DBTX querier so the same implementation
// works against the pool and inside a transaction.
package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"investigator-server/internal/models"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager runs a function inside one database transaction, committing on
// success and rolling back on error or panic. The session transaction and the
// backup restore are each one such unit.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, q DBTX) error) error
}

// CharacterRepository persists investigator sheets.
type CharacterRepository interface {
	Create(ctx context.Context, q DBTX, character *models.Character) error
	GetByID(ctx context.Context, q DBTX, id uuid.UUID) (*models.Character, error)
	// List returns the list read-model with play statistics computed from the
	// session history (last play date, session count, unrecovered symptoms).
	List(ctx context.Context, q DBTX) ([]models.CharacterSummary, error)
	// Update overwrites every mutable field of the character row.
	Update(ctx context.Context, q DBTX, character *models.Character) error
	// UpdateSheetState persists only the current skills mapping and sanity,
	// the single write that ends a session transaction.
	UpdateSheetState(ctx context.Context, q DBTX, id uuid.UUID, skills models.SkillSet, san int) error
	Delete(ctx context.Context, q DBTX, id uuid.UUID) error
}

// ScenarioRepository persists adventure modules, deduplicated by exact title
// at the call site (find before create; first title wins).
type ScenarioRepository interface {
	FindByTitle(ctx context.Context, q DBTX, title string) (*models.Scenario, error)
	Create(ctx context.Context, q DBTX, scenario *models.Scenario) error
}

// SessionRepository persists played sittings.
type SessionRepository interface {
	Create(ctx context.Context, q DBTX, session *models.Session) error
	// ListByCharacter returns sessions newest-first with Scenario populated;
	// nested history rows are attached by the service.
	ListByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) ([]models.Session, error)
	Delete(ctx context.Context, q DBTX, id uuid.UUID) error
	DeleteByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) error
}

// HistoryRepository persists the three audit-trail row kinds owned by a
// session. All rows are append-only; deletion happens only wholesale per
// character during a backup restore.
type HistoryRepository interface {
	CreateSkillHistory(ctx context.Context, q DBTX, h *models.SkillHistory) error
	CreateSanityHistory(ctx context.Context, q DBTX, h *models.SanityHistory) error
	CreateSymptom(ctx context.Context, q DBTX, s *models.InsanitySymptom) error

	ListSkillByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) ([]models.SkillHistory, error)
	ListSanityByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) ([]models.SanityHistory, error)
	ListSymptomsByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) ([]models.InsanitySymptom, error)

	DeleteSkillByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) error
	DeleteSanityByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) error
	DeleteSymptomsByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) error
}

// ImageRepository persists portrait metadata rows.
type ImageRepository interface {
	Create(ctx context.Context, q DBTX, image *models.CharacterImage) error
	GetByID(ctx context.Context, q DBTX, id uuid.UUID) (*models.CharacterImage, error)
	ListByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) ([]models.CharacterImage, error)
	CountByCharacter(ctx context.Context, q DBTX, characterID uuid.UUID) (int, error)
	UpdateName(ctx context.Context, q DBTX, id uuid.UUID, imageName *string) error
	Delete(ctx context.Context, q DBTX, id uuid.UUID) error
}
