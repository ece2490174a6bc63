package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/metrics"
	"investigator-server/internal/models"
	"investigator-server/internal/rules"
)

// SkillGrowthEntry is one skill change reported for a session. Old and new
// values come from the table as played; the service records them verbatim.
type SkillGrowthEntry struct {
	SkillName string `json:"skillName"`
	OldValue  int    `json:"oldValue"`
	NewValue  int    `json:"newValue"`
}

// SymptomEntry is one reported madness manifestation. Entries with a blank
// name are skipped silently.
type SymptomEntry struct {
	Type        models.SymptomType `json:"type"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
}

// SessionReport is the payload of one recorded sitting.
type SessionReport struct {
	ScenarioTitle    string             `json:"scenarioTitle"`
	ScenarioAuthor   *string            `json:"scenarioAuthor"`
	KPName           *string            `json:"kpName"`
	PlayDate         time.Time          `json:"playDate"`
	Participants     *string            `json:"participants"`
	Memo             *string            `json:"memo"`
	SkillGrowth      []SkillGrowthEntry `json:"skillGrowth"`
	SanityLoss       int                `json:"sanityLoss"`
	InsanitySymptoms []SymptomEntry     `json:"insanitySymptoms"`
}

// SessionSummary counts what a recorded session actually wrote.
type SessionSummary struct {
	SkillsGrown      int `json:"skillsGrown"`
	SanityLost       int `json:"sanityLost"`
	SymptomsRecorded int `json:"symptomsRecorded"`
}

// SessionResult is the outcome of a session transaction.
type SessionResult struct {
	Session   *models.Session   `json:"session"`
	Scenario  *models.Scenario  `json:"scenario"`
	Character *models.Character `json:"character"`
	Summary   SessionSummary    `json:"summary"`
}

// SessionService records and queries play sessions.
type SessionService interface {
	// RecordSession applies one session report atomically: scenario
	// resolution, session row, history rows and the character state update
	// either all commit or none do.
	RecordSession(ctx context.Context, characterID uuid.UUID, report SessionReport) (*SessionResult, error)
	// ListSessions returns the character's sessions newest-first with their
	// scenario and nested history rows attached.
	ListSessions(ctx context.Context, characterID uuid.UUID) ([]models.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	db            interfaces.DBTX
	txManager     interfaces.TxManager
	characterRepo interfaces.CharacterRepository
	scenarioRepo  interfaces.ScenarioRepository
	sessionRepo   interfaces.SessionRepository
	historyRepo   interfaces.HistoryRepository
	perCharacter  *keyedMutex
	logger        *zap.Logger
}

// NewSessionService wires the session service.
func NewSessionService(
	db interfaces.DBTX,
	txManager interfaces.TxManager,
	characterRepo interfaces.CharacterRepository,
	scenarioRepo interfaces.ScenarioRepository,
	sessionRepo interfaces.SessionRepository,
	historyRepo interfaces.HistoryRepository,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		db:            db,
		txManager:     txManager,
		characterRepo: characterRepo,
		scenarioRepo:  scenarioRepo,
		sessionRepo:   sessionRepo,
		historyRepo:   historyRepo,
		perCharacter:  newKeyedMutex(),
		logger:        logger.Named("SessionService"),
	}
}

func (s *sessionService) RecordSession(ctx context.Context, characterID uuid.UUID, report SessionReport) (*SessionResult, error) {
	title := strings.TrimSpace(report.ScenarioTitle)
	if title == "" {
		return nil, models.ErrScenarioTitleRequired
	}
	for _, symptom := range report.InsanitySymptoms {
		if strings.TrimSpace(symptom.Name) != "" && !symptom.Type.Valid() {
			return nil, models.ErrInvalidSymptomType
		}
	}

	// Two reports for the same character must not interleave; last writer
	// would silently win on the skills and sanity scalars otherwise.
	s.perCharacter.Lock(characterID)
	defer s.perCharacter.Unlock(characterID)

	var result *SessionResult
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, q interfaces.DBTX) error {
		scenario, err := s.resolveScenario(ctx, q, title, report)
		if err != nil {
			return err
		}

		session := &models.Session{
			CharacterID:  characterID,
			ScenarioID:   scenario.ID,
			KPName:       report.KPName,
			PlayDate:     report.PlayDate,
			Participants: report.Participants,
			Memo:         report.Memo,
		}
		if err := s.sessionRepo.Create(ctx, q, session); err != nil {
			return err
		}

		character, err := s.characterRepo.GetByID(ctx, q, characterID)
		if err != nil {
			return err
		}

		skills := character.Skills.Clone()
		for _, growth := range report.SkillGrowth {
			history := &models.SkillHistory{
				CharacterID: characterID,
				SessionID:   session.ID,
				SkillName:   growth.SkillName,
				OldValue:    growth.OldValue,
				NewValue:    growth.NewValue,
				Reason:      fmt.Sprintf("%sでの成長", title),
			}
			if err := s.historyRepo.CreateSkillHistory(ctx, q, history); err != nil {
				return err
			}
			skills[growth.SkillName] = growth.NewValue
		}

		san := character.DerivedStats.San
		sanityLost := 0
		if report.SanityLoss > 0 {
			newSan := rules.ApplySanityLoss(san, report.SanityLoss)
			history := &models.SanityHistory{
				CharacterID: characterID,
				SessionID:   session.ID,
				OldValue:    san,
				NewValue:    newSan,
				Reason:      fmt.Sprintf("%sでのSAN値減少", title),
			}
			if err := s.historyRepo.CreateSanityHistory(ctx, q, history); err != nil {
				return err
			}
			sanityLost = san - newSan
			san = newSan
		}

		symptomsRecorded := 0
		for _, entry := range report.InsanitySymptoms {
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				continue
			}
			symptom := &models.InsanitySymptom{
				CharacterID: characterID,
				SessionID:   session.ID,
				SymptomType: entry.Type,
				SymptomName: name,
				Description: entry.Description,
			}
			if err := s.historyRepo.CreateSymptom(ctx, q, symptom); err != nil {
				return err
			}
			symptomsRecorded++
		}

		if err := s.characterRepo.UpdateSheetState(ctx, q, characterID, skills, san); err != nil {
			return err
		}

		character.Skills = skills
		character.DerivedStats.San = san

		result = &SessionResult{
			Session:   session,
			Scenario:  scenario,
			Character: character,
			Summary: SessionSummary{
				SkillsGrown:      len(report.SkillGrowth),
				SanityLost:       sanityLost,
				SymptomsRecorded: symptomsRecorded,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsRecorded.Inc()
	s.logger.Info("Session recorded",
		zap.String("character_id", characterID.String()),
		zap.String("session_id", result.Session.ID.String()),
		zap.String("scenario", title))
	return result, nil
}

// resolveScenario finds the scenario by exact title, creating it on first
// use. A freshly created scenario defaults its author to the reported KP.
func (s *sessionService) resolveScenario(ctx context.Context, q interfaces.DBTX, title string, report SessionReport) (*models.Scenario, error) {
	scenario, err := s.scenarioRepo.FindByTitle(ctx, q, title)
	if err == nil {
		return scenario, nil
	}
	if !errors.Is(err, models.ErrScenarioNotFound) {
		return nil, err
	}

	author := report.ScenarioAuthor
	if author == nil {
		author = report.KPName
	}
	scenario = &models.Scenario{
		Title:  title,
		Author: author,
	}
	if err := s.scenarioRepo.Create(ctx, q, scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *sessionService) ListSessions(ctx context.Context, characterID uuid.UUID) ([]models.Session, error) {
	if _, err := s.characterRepo.GetByID(ctx, s.db, characterID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListByCharacter(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}

	skillRows, err := s.historyRepo.ListSkillByCharacter(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	sanityRows, err := s.historyRepo.ListSanityByCharacter(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	symptomRows, err := s.historyRepo.ListSymptomsByCharacter(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}

	skillsBySession := make(map[uuid.UUID][]models.SkillHistory)
	for _, row := range skillRows {
		skillsBySession[row.SessionID] = append(skillsBySession[row.SessionID], row)
	}
	sanityBySession := make(map[uuid.UUID][]models.SanityHistory)
	for _, row := range sanityRows {
		sanityBySession[row.SessionID] = append(sanityBySession[row.SessionID], row)
	}
	symptomsBySession := make(map[uuid.UUID][]models.InsanitySymptom)
	for _, row := range symptomRows {
		symptomsBySession[row.SessionID] = append(symptomsBySession[row.SessionID], row)
	}

	for i := range sessions {
		id := sessions[i].ID
		sessions[i].SkillHistories = skillsBySession[id]
		sessions[i].SanityHistories = sanityBySession[id]
		sessions[i].InsanitySymptoms = symptomsBySession[id]
	}
	return sessions, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := s.sessionRepo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.logger.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}
