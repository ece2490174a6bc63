// Package service contains the application services orchestrating
// repositories, the blob store and the game rules.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/metrics"
	"investigator-server/internal/models"
	"investigator-server/internal/parser"
)

// CharacterInput carries every mutable field of a character sheet. Values are
// taken as provided; omitted numbers default to zero.
type CharacterInput struct {
	Name       string  `json:"name"`
	Occupation *string `json:"occupation"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	Birthplace *string `json:"birthplace"`
	Residence  *string `json:"residence"`

	Stats        models.AbilityScores `json:"stats"`
	DerivedStats models.DerivedStats  `json:"derivedStats"`
	Skills       models.SkillSet      `json:"skills"`
	Memo         *string              `json:"memo"`
	IsLost       bool                 `json:"isLost"`
}

// ImportOutcome is the result of a text import: the structured preview, plus
// the created character when creation was requested.
type ImportOutcome struct {
	Parsed    *parser.Result    `json:"parsed"`
	Character *models.Character `json:"character,omitempty"`
}

// CharacterService manages investigator sheets and the text import flow.
type CharacterService interface {
	CreateCharacter(ctx context.Context, input CharacterInput) (*models.Character, error)
	GetCharacter(ctx context.Context, id uuid.UUID) (*models.Character, error)
	ListCharacters(ctx context.Context) ([]models.CharacterSummary, error)
	UpdateCharacter(ctx context.Context, id uuid.UUID, input CharacterInput) (*models.Character, error)
	DeleteCharacter(ctx context.Context, id uuid.UUID) error
	// ImportText parses a plain-text character export. With create set, the
	// parsed character is persisted in the same call.
	ImportText(ctx context.Context, text string, create bool) (*ImportOutcome, error)
}

type characterService struct {
	db            interfaces.DBTX
	characterRepo interfaces.CharacterRepository
	imageRepo     interfaces.ImageRepository
	blobStore     interfaces.BlobStore
	logger        *zap.Logger
}

// NewCharacterService wires the character service.
func NewCharacterService(
	db interfaces.DBTX,
	characterRepo interfaces.CharacterRepository,
	imageRepo interfaces.ImageRepository,
	blobStore interfaces.BlobStore,
	logger *zap.Logger,
) CharacterService {
	return &characterService{
		db:            db,
		characterRepo: characterRepo,
		imageRepo:     imageRepo,
		blobStore:     blobStore,
		logger:        logger.Named("CharacterService"),
	}
}

func (s *characterService) CreateCharacter(ctx context.Context, input CharacterInput) (*models.Character, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, models.ErrNameRequired
	}

	character := characterFromInput(input)
	if err := s.characterRepo.Create(ctx, s.db, character); err != nil {
		return nil, err
	}

	metrics.CharactersCreated.Inc()
	s.logger.Info("Character created",
		zap.String("character_id", character.ID.String()),
		zap.String("name", character.Name))
	return character, nil
}

func (s *characterService) GetCharacter(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	character, err := s.characterRepo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ListByCharacter(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	character.Images = images

	return character, nil
}

func (s *characterService) ListCharacters(ctx context.Context) ([]models.CharacterSummary, error) {
	summaries, err := s.characterRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	for i := range summaries {
		summaries[i].ComputeStatus(now)
	}
	return summaries, nil
}

func (s *characterService) UpdateCharacter(ctx context.Context, id uuid.UUID, input CharacterInput) (*models.Character, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, models.ErrNameRequired
	}

	existing, err := s.characterRepo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	character := characterFromInput(input)
	character.ID = id
	character.CreatedAt = existing.CreatedAt

	if err := s.characterRepo.Update(ctx, s.db, character); err != nil {
		return nil, err
	}
	return character, nil
}

// DeleteCharacter removes the row (history cascades at the schema level) and
// then best-effort removes the stored portrait blobs. A blob that refuses to
// go only gets a log line; the delete already succeeded.
func (s *characterService) DeleteCharacter(ctx context.Context, id uuid.UUID) error {
	images, err := s.imageRepo.ListByCharacter(ctx, s.db, id)
	if err != nil {
		return err
	}

	if err := s.characterRepo.Delete(ctx, s.db, id); err != nil {
		return err
	}

	for _, img := range images {
		if err := s.blobStore.Delete(ctx, img.Filename); err != nil {
			metrics.OrphanedBlobs.Inc()
			s.logger.Warn("Failed to delete portrait blob, leaving orphan",
				zap.String("character_id", id.String()),
				zap.String("key", img.Filename),
				zap.Error(err))
		}
	}

	s.logger.Info("Character deleted", zap.String("character_id", id.String()))
	return nil
}

func (s *characterService) ImportText(ctx context.Context, text string, create bool) (*ImportOutcome, error) {
	parsed := parser.ParseCharacterText(text)
	if !parsed.Recognized() {
		metrics.ImportsParsed.WithLabelValues("unrecognized").Inc()
		return nil, models.ErrUnrecognizedImport
	}
	metrics.ImportsParsed.WithLabelValues("ok").Inc()

	outcome := &ImportOutcome{Parsed: parsed}
	if !create {
		return outcome, nil
	}

	input := CharacterInput{
		Name:         parsed.Name,
		Stats:        parsed.Stats,
		DerivedStats: parsed.DerivedStats,
		Skills:       parsed.Skills,
	}
	if parsed.Occupation != "" {
		input.Occupation = ptr(parsed.Occupation)
	}
	if parsed.Age != nil {
		input.Age = parsed.Age
	}
	if parsed.Gender != "" {
		input.Gender = ptr(parsed.Gender)
	}
	if parsed.Birthplace != "" {
		input.Birthplace = ptr(parsed.Birthplace)
	}
	if parsed.Memo != "" {
		input.Memo = ptr(parsed.Memo)
	}

	character, err := s.CreateCharacter(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create imported character: %w", err)
	}
	outcome.Character = character
	return outcome, nil
}

// characterFromInput builds the model. Derived stats come from the payload
// verbatim; clients track in-play current values themselves.
func characterFromInput(input CharacterInput) *models.Character {
	skills := input.Skills
	if skills == nil {
		skills = models.SkillSet{}
	}

	return &models.Character{
		Name:         strings.TrimSpace(input.Name),
		Occupation:   input.Occupation,
		Age:          input.Age,
		Gender:       input.Gender,
		Birthplace:   input.Birthplace,
		Residence:    input.Residence,
		Stats:        input.Stats,
		DerivedStats: input.DerivedStats,
		Skills:       skills,
		Memo:         input.Memo,
		IsLost:       input.IsLost,
	}
}

func ptr[T any](v T) *T { return &v }
