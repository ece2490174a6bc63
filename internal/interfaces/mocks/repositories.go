// Package mocks provides hand-written testify mocks for the persistence and
// storage interfaces, used by service tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/models"
)

// --- TxManager ---

var _ interfaces.TxManager = (*MockTxManager)(nil)

type MockTxManager struct {
	mock.Mock
}

// WithTransaction records the call and, unless a stubbed error says otherwise,
// runs fn with a nil querier so the repositories mocked inside get exercised.
func (m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, q interfaces.DBTX) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, nil)
}

// --- CharacterRepository ---

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)

type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) Create(ctx context.Context, q interfaces.DBTX, character *models.Character) error {
	args := m.Called(ctx, q, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) GetByID(ctx context.Context, q interfaces.DBTX, id uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Character), args.Error(1)
}

func (m *MockCharacterRepository) List(ctx context.Context, q interfaces.DBTX) ([]models.CharacterSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CharacterSummary), args.Error(1)
}

func (m *MockCharacterRepository) Update(ctx context.Context, q interfaces.DBTX, character *models.Character) error {
	args := m.Called(ctx, q, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) UpdateSheetState(ctx context.Context, q interfaces.DBTX, id uuid.UUID, skills models.SkillSet, san int) error {
	args := m.Called(ctx, q, id, skills, san)
	return args.Error(0)
}

func (m *MockCharacterRepository) Delete(ctx context.Context, q interfaces.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// --- ScenarioRepository ---

var _ interfaces.ScenarioRepository = (*MockScenarioRepository)(nil)

type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) FindByTitle(ctx context.Context, q interfaces.DBTX, title string) (*models.Scenario, error) {
	args := m.Called(ctx, q, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) Create(ctx context.Context, q interfaces.DBTX, scenario *models.Scenario) error {
	args := m.Called(ctx, q, scenario)
	return args.Error(0)
}

// --- SessionRepository ---

var _ interfaces.SessionRepository = (*MockSessionRepository)(nil)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, q interfaces.DBTX, session *models.Session) error {
	args := m.Called(ctx, q, session)
	return args.Error(0)
}

func (m *MockSessionRepository) ListByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.Session, error) {
	args := m.Called(ctx, q, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, q interfaces.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	args := m.Called(ctx, q, characterID)
	return args.Error(0)
}

// --- HistoryRepository ---

var _ interfaces.HistoryRepository = (*MockHistoryRepository)(nil)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) CreateSkillHistory(ctx context.Context, q interfaces.DBTX, h *models.SkillHistory) error {
	args := m.Called(ctx, q, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) CreateSanityHistory(ctx context.Context, q interfaces.DBTX, h *models.SanityHistory) error {
	args := m.Called(ctx, q, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) CreateSymptom(ctx context.Context, q interfaces.DBTX, s *models.InsanitySymptom) error {
	args := m.Called(ctx, q, s)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListSkillByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.SkillHistory, error) {
	args := m.Called(ctx, q, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SkillHistory), args.Error(1)
}

func (m *MockHistoryRepository) ListSanityByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.SanityHistory, error) {
	args := m.Called(ctx, q, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SanityHistory), args.Error(1)
}

func (m *MockHistoryRepository) ListSymptomsByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.InsanitySymptom, error) {
	args := m.Called(ctx, q, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InsanitySymptom), args.Error(1)
}

func (m *MockHistoryRepository) DeleteSkillByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	args := m.Called(ctx, q, characterID)
	return args.Error(0)
}

func (m *MockHistoryRepository) DeleteSanityByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	args := m.Called(ctx, q, characterID)
	return args.Error(0)
}

func (m *MockHistoryRepository) DeleteSymptomsByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) error {
	args := m.Called(ctx, q, characterID)
	return args.Error(0)
}

// --- ImageRepository ---

var _ interfaces.ImageRepository = (*MockImageRepository)(nil)

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, q interfaces.DBTX, image *models.CharacterImage) error {
	args := m.Called(ctx, q, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByID(ctx context.Context, q interfaces.DBTX, id uuid.UUID) (*models.CharacterImage, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CharacterImage), args.Error(1)
}

func (m *MockImageRepository) ListByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.CharacterImage, error) {
	args := m.Called(ctx, q, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CharacterImage), args.Error(1)
}

func (m *MockImageRepository) CountByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) (int, error) {
	args := m.Called(ctx, q, characterID)
	return args.Int(0), args.Error(1)
}

func (m *MockImageRepository) UpdateName(ctx context.Context, q interfaces.DBTX, id uuid.UUID, imageName *string) error {
	args := m.Called(ctx, q, id, imageName)
	return args.Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, q interfaces.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}
