package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces/mocks"
	"investigator-server/internal/models"
	"investigator-server/internal/service"
)

func newSessionServiceWithMocks() (service.SessionService, *mocks.MockTxManager, *mocks.MockCharacterRepository, *mocks.MockScenarioRepository, *mocks.MockSessionRepository, *mocks.MockHistoryRepository) {
	txManager := new(mocks.MockTxManager)
	characterRepo := new(mocks.MockCharacterRepository)
	scenarioRepo := new(mocks.MockScenarioRepository)
	sessionRepo := new(mocks.MockSessionRepository)
	historyRepo := new(mocks.MockHistoryRepository)
	svc := service.NewSessionService(nil, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo, zap.NewNop())
	return svc, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo
}

func testCharacter(id uuid.UUID) *models.Character {
	return &models.Character{
		ID:   id,
		Name: "桐生 葵",
		Stats: models.AbilityScores{
			Str: 50, Con: 60, Pow: 50, Dex: 70, App: 55, Siz: 45, Int: 75, Edu: 80, Luck: 60,
		},
		DerivedStats: models.DerivedStats{
			HP: 11, MaxHP: 11, MP: 10, MaxMP: 10, San: 50, MaxSan: 50, Mov: 9, Build: 0,
		},
		Skills: models.SkillSet{"listen": 40, "spotHidden": 55},
	}
}

func TestRecordSession(t *testing.T) {
	ctx := context.Background()
	characterID := uuid.New()

	t.Run("growth and sanity loss update the sheet atomically", func(t *testing.T) {
		svc, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo := newSessionServiceWithMocks()

		character := testCharacter(characterID)
		scenario := &models.Scenario{ID: uuid.New(), Title: "悪霊の家"}
		sessionID := uuid.New()

		txManager.On("WithTransaction", ctx, mock.Anything).Return(nil).Once()
		scenarioRepo.On("FindByTitle", ctx, mock.Anything, "悪霊の家").Return(scenario, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(s *models.Session) bool {
			return s.CharacterID == characterID && s.ScenarioID == scenario.ID
		})).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Session).ID = sessionID
		}).Return(nil).Once()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(character, nil).Once()

		historyRepo.On("CreateSkillHistory", ctx, mock.Anything, mock.MatchedBy(func(h *models.SkillHistory) bool {
			return h.SessionID == sessionID &&
				h.SkillName == "listen" &&
				h.OldValue == 40 && h.NewValue == 47 &&
				h.Reason == "悪霊の家での成長"
		})).Return(nil).Once()
		historyRepo.On("CreateSanityHistory", ctx, mock.Anything, mock.MatchedBy(func(h *models.SanityHistory) bool {
			return h.SessionID == sessionID &&
				h.OldValue == 50 && h.NewValue == 40 &&
				h.Reason == "悪霊の家でのSAN値減少"
		})).Return(nil).Once()

		characterRepo.On("UpdateSheetState", ctx, mock.Anything, characterID, mock.MatchedBy(func(skills models.SkillSet) bool {
			return skills["listen"] == 47 && skills["spotHidden"] == 55
		}), 40).Return(nil).Once()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "悪霊の家",
			PlayDate:      time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC),
			SkillGrowth: []service.SkillGrowthEntry{
				{SkillName: "listen", OldValue: 40, NewValue: 47},
			},
			SanityLoss: 10,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, 47, result.Character.Skills["listen"])
		assert.Equal(t, 40, result.Character.DerivedStats.San)
		assert.Equal(t, 1, result.Summary.SkillsGrown)
		assert.Equal(t, 10, result.Summary.SanityLost)
		assert.Equal(t, 0, result.Summary.SymptomsRecorded)

		characterRepo.AssertExpectations(t)
		scenarioRepo.AssertExpectations(t)
		sessionRepo.AssertExpectations(t)
		historyRepo.AssertExpectations(t)
	})

	t.Run("sanity loss clamps at zero", func(t *testing.T) {
		svc, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo := newSessionServiceWithMocks()

		character := testCharacter(characterID)
		character.DerivedStats.San = 5
		scenario := &models.Scenario{ID: uuid.New(), Title: "閉鎖病棟"}

		txManager.On("WithTransaction", ctx, mock.Anything).Return(nil).Once()
		scenarioRepo.On("FindByTitle", ctx, mock.Anything, "閉鎖病棟").Return(scenario, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Session).ID = uuid.New()
		}).Return(nil).Once()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(character, nil).Once()
		historyRepo.On("CreateSanityHistory", ctx, mock.Anything, mock.MatchedBy(func(h *models.SanityHistory) bool {
			return h.OldValue == 5 && h.NewValue == 0
		})).Return(nil).Once()
		characterRepo.On("UpdateSheetState", ctx, mock.Anything, characterID, mock.Anything, 0).Return(nil).Once()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "閉鎖病棟",
			PlayDate:      time.Now(),
			SanityLoss:    40,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Character.DerivedStats.San)
		assert.Equal(t, 5, result.Summary.SanityLost)
	})

	t.Run("blank-named symptoms are skipped, named ones recorded", func(t *testing.T) {
		svc, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo := newSessionServiceWithMocks()

		character := testCharacter(characterID)
		scenario := &models.Scenario{ID: uuid.New(), Title: "毒入り山荘"}

		txManager.On("WithTransaction", ctx, mock.Anything).Return(nil).Once()
		scenarioRepo.On("FindByTitle", ctx, mock.Anything, "毒入り山荘").Return(scenario, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Session).ID = uuid.New()
		}).Return(nil).Once()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(character, nil).Once()
		historyRepo.On("CreateSymptom", ctx, mock.Anything, mock.MatchedBy(func(s *models.InsanitySymptom) bool {
			return s.SymptomName == "暗所恐怖症" && s.SymptomType == models.SymptomPhobia
		})).Return(nil).Once()
		characterRepo.On("UpdateSheetState", ctx, mock.Anything, characterID, mock.Anything, 50).Return(nil).Once()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "毒入り山荘",
			PlayDate:      time.Now(),
			InsanitySymptoms: []service.SymptomEntry{
				{Type: models.SymptomPhobia, Name: "  "},
				{Type: models.SymptomPhobia, Name: "暗所恐怖症"},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Summary.SymptomsRecorded)
		historyRepo.AssertNumberOfCalls(t, "CreateSymptom", 1)
	})

	t.Run("blank scenario title rejected before the transaction", func(t *testing.T) {
		svc, txManager, _, _, _, _ := newSessionServiceWithMocks()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "   ",
			PlayDate:      time.Now(),
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, models.ErrScenarioTitleRequired)
		txManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("invalid symptom type rejected before the transaction", func(t *testing.T) {
		svc, txManager, _, _, _, _ := newSessionServiceWithMocks()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "悪霊の家",
			PlayDate:      time.Now(),
			InsanitySymptoms: []service.SymptomEntry{
				{Type: "delusion", Name: "幻聴"},
			},
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, models.ErrInvalidSymptomType)
		txManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("new scenario created with author defaulted to KP", func(t *testing.T) {
		svc, txManager, characterRepo, scenarioRepo, sessionRepo, _ := newSessionServiceWithMocks()

		character := testCharacter(characterID)
		kp := "田中KP"

		txManager.On("WithTransaction", ctx, mock.Anything).Return(nil).Once()
		scenarioRepo.On("FindByTitle", ctx, mock.Anything, "新作シナリオ").Return(nil, models.ErrScenarioNotFound).Once()
		scenarioRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(s *models.Scenario) bool {
			return s.Title == "新作シナリオ" && s.Author != nil && *s.Author == kp
		})).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Scenario).ID = uuid.New()
		}).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Session).ID = uuid.New()
		}).Return(nil).Once()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(character, nil).Once()
		characterRepo.On("UpdateSheetState", ctx, mock.Anything, characterID, mock.Anything, 50).Return(nil).Once()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "新作シナリオ",
			KPName:        &kp,
			PlayDate:      time.Now(),
		})

		assert.NoError(t, err)
		assert.Equal(t, "新作シナリオ", result.Scenario.Title)
		scenarioRepo.AssertExpectations(t)
	})

	t.Run("missing character aborts the whole unit", func(t *testing.T) {
		svc, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo := newSessionServiceWithMocks()

		scenario := &models.Scenario{ID: uuid.New(), Title: "悪霊の家"}

		txManager.On("WithTransaction", ctx, mock.Anything).Return(nil).Once()
		scenarioRepo.On("FindByTitle", ctx, mock.Anything, "悪霊の家").Return(scenario, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Session).ID = uuid.New()
		}).Return(nil).Once()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(nil, models.ErrCharacterNotFound).Once()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "悪霊の家",
			PlayDate:      time.Now(),
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, models.ErrCharacterNotFound)
		historyRepo.AssertNotCalled(t, "CreateSkillHistory", mock.Anything, mock.Anything, mock.Anything)
		characterRepo.AssertNotCalled(t, "UpdateSheetState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a failing symptom write after history writes never touches the sheet", func(t *testing.T) {
		svc, txManager, characterRepo, scenarioRepo, sessionRepo, historyRepo := newSessionServiceWithMocks()

		character := testCharacter(characterID)
		scenario := &models.Scenario{ID: uuid.New(), Title: "悪霊の家"}

		txManager.On("WithTransaction", ctx, mock.Anything).Return(nil).Once()
		scenarioRepo.On("FindByTitle", ctx, mock.Anything, "悪霊の家").Return(scenario, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(2).(*models.Session).ID = uuid.New()
		}).Return(nil).Once()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(character, nil).Once()
		historyRepo.On("CreateSkillHistory", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		historyRepo.On("CreateSanityHistory", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		historyRepo.On("CreateSymptom", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()

		result, err := svc.RecordSession(ctx, characterID, service.SessionReport{
			ScenarioTitle: "悪霊の家",
			PlayDate:      time.Now(),
			SkillGrowth: []service.SkillGrowthEntry{
				{SkillName: "listen", OldValue: 40, NewValue: 47},
			},
			SanityLoss: 10,
			InsanitySymptoms: []service.SymptomEntry{
				{Type: models.SymptomMania, Name: "放火癖"},
			},
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, assert.AnError)
		historyRepo.AssertNumberOfCalls(t, "CreateSkillHistory", 1)
		historyRepo.AssertNumberOfCalls(t, "CreateSanityHistory", 1)
		characterRepo.AssertNotCalled(t, "UpdateSheetState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()
	characterID := uuid.New()

	t.Run("history rows are grouped under their sessions", func(t *testing.T) {
		svc, _, characterRepo, _, sessionRepo, historyRepo := newSessionServiceWithMocks()

		firstID := uuid.New()
		secondID := uuid.New()
		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(testCharacter(characterID), nil).Once()
		sessionRepo.On("ListByCharacter", ctx, mock.Anything, characterID).Return([]models.Session{
			{ID: secondID, CharacterID: characterID},
			{ID: firstID, CharacterID: characterID},
		}, nil).Once()
		historyRepo.On("ListSkillByCharacter", ctx, mock.Anything, characterID).Return([]models.SkillHistory{
			{SessionID: firstID, SkillName: "listen"},
			{SessionID: secondID, SkillName: "dodge"},
			{SessionID: secondID, SkillName: "listen"},
		}, nil).Once()
		historyRepo.On("ListSanityByCharacter", ctx, mock.Anything, characterID).Return([]models.SanityHistory{
			{SessionID: firstID, OldValue: 50, NewValue: 45},
		}, nil).Once()
		historyRepo.On("ListSymptomsByCharacter", ctx, mock.Anything, characterID).Return([]models.InsanitySymptom{
			{SessionID: secondID, SymptomName: "暗所恐怖症"},
		}, nil).Once()

		sessions, err := svc.ListSessions(ctx, characterID)

		assert.NoError(t, err)
		assert.Len(t, sessions, 2)
		assert.Len(t, sessions[0].SkillHistories, 2)
		assert.Len(t, sessions[0].InsanitySymptoms, 1)
		assert.Empty(t, sessions[0].SanityHistories)
		assert.Len(t, sessions[1].SkillHistories, 1)
		assert.Len(t, sessions[1].SanityHistories, 1)
	})

	t.Run("unknown character propagates not found", func(t *testing.T) {
		svc, _, characterRepo, _, sessionRepo, _ := newSessionServiceWithMocks()

		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(nil, models.ErrCharacterNotFound).Once()

		sessions, err := svc.ListSessions(ctx, characterID)

		assert.Nil(t, sessions)
		assert.ErrorIs(t, err, models.ErrCharacterNotFound)
		sessionRepo.AssertNotCalled(t, "ListByCharacter", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()

	t.Run("delete propagates repository errors", func(t *testing.T) {
		svc, _, _, _, sessionRepo, _ := newSessionServiceWithMocks()

		id := uuid.New()
		sessionRepo.On("Delete", ctx, mock.Anything, id).Return(models.ErrSessionNotFound).Once()

		err := svc.DeleteSession(ctx, id)
		assert.True(t, errors.Is(err, models.ErrSessionNotFound))
	})
}
