package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/metrics"
	"investigator-server/internal/models"
)

// BackupService exports and restores the versioned character backup document.
type BackupService interface {
	Export(ctx context.Context, characterID uuid.UUID) (*models.BackupDocument, error)
	// Restore destructively replaces the character's sheet state and entire
	// session history with the document's contents, atomically.
	Restore(ctx context.Context, characterID uuid.UUID, doc *models.BackupDocument) (*models.Character, error)
}

type backupService struct {
	db            interfaces.DBTX
	txManager     interfaces.TxManager
	characterRepo interfaces.CharacterRepository
	scenarioRepo  interfaces.ScenarioRepository
	sessionRepo   interfaces.SessionRepository
	historyRepo   interfaces.HistoryRepository
	imageRepo     interfaces.ImageRepository
	logger        *zap.Logger
}

// NewBackupService wires the backup service.
func NewBackupService(
	db interfaces.DBTX,
	txManager interfaces.TxManager,
	characterRepo interfaces.CharacterRepository,
	scenarioRepo interfaces.ScenarioRepository,
	sessionRepo interfaces.SessionRepository,
	historyRepo interfaces.HistoryRepository,
	imageRepo interfaces.ImageRepository,
	logger *zap.Logger,
) BackupService {
	return &backupService{
		db:            db,
		txManager:     txManager,
		characterRepo: characterRepo,
		scenarioRepo:  scenarioRepo,
		sessionRepo:   sessionRepo,
		historyRepo:   historyRepo,
		imageRepo:     imageRepo,
		logger:        logger.Named("BackupService"),
	}
}

func (s *backupService) Export(ctx context.Context, characterID uuid.UUID) (*models.BackupDocument, error) {
	character, err := s.characterRepo.GetByID(ctx, s.db, characterID)
	if err != nil {
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
	images, err := s.imageRepo.ListByCharacter(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}

	doc := &models.BackupDocument{
		Version:    models.BackupVersion,
		ExportDate: timeNow().UTC(),
		Character: &models.BackupCharacter{
			ID:           character.ID,
			Name:         character.Name,
			Occupation:   character.Occupation,
			Age:          character.Age,
			Gender:       character.Gender,
			Birthplace:   character.Birthplace,
			Residence:    character.Residence,
			Stats:        character.Stats,
			DerivedStats: character.DerivedStats,
			Skills:       character.Skills,
			Memo:         character.Memo,
			IsLost:       character.IsLost,
			CreatedAt:    character.CreatedAt,
			UpdatedAt:    character.UpdatedAt,
		},
		Sessions: make([]models.BackupSession, 0, len(sessions)),
		Images:   make([]models.BackupImage, 0, len(images)),
	}

	skillsBySession := make(map[uuid.UUID][]models.BackupSkillHistory)
	totalSanityLoss := 0
	for _, row := range skillRows {
		skillsBySession[row.SessionID] = append(skillsBySession[row.SessionID], models.BackupSkillHistory{
			SkillName: row.SkillName,
			OldValue:  row.OldValue,
			NewValue:  row.NewValue,
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt,
		})
	}
	sanityBySession := make(map[uuid.UUID][]models.BackupSanityHistory)
	for _, row := range sanityRows {
		sanityBySession[row.SessionID] = append(sanityBySession[row.SessionID], models.BackupSanityHistory{
			OldValue:  row.OldValue,
			NewValue:  row.NewValue,
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt,
		})
		totalSanityLoss += row.OldValue - row.NewValue
	}
	symptomsBySession := make(map[uuid.UUID][]models.BackupSymptom)
	for _, row := range symptomRows {
		symptomsBySession[row.SessionID] = append(symptomsBySession[row.SessionID], models.BackupSymptom{
			SymptomType: row.SymptomType,
			SymptomName: row.SymptomName,
			Description: row.Description,
			IsRecovered: row.IsRecovered,
			RecoveredAt: row.RecoveredAt,
			CreatedAt:   row.CreatedAt,
		})
	}

	for _, session := range sessions {
		backupSession := models.BackupSession{
			ID:               session.ID,
			PlayDate:         session.PlayDate,
			KPName:           session.KPName,
			Participants:     session.Participants,
			Memo:             session.Memo,
			SkillHistories:   skillsBySession[session.ID],
			SanityHistories:  sanityBySession[session.ID],
			InsanitySymptoms: symptomsBySession[session.ID],
			CreatedAt:        session.CreatedAt,
		}
		if session.Scenario != nil {
			backupSession.Scenario = models.BackupScenario{
				Title:       session.Scenario.Title,
				Author:      session.Scenario.Author,
				Description: session.Scenario.Description,
			}
		}
		doc.Sessions = append(doc.Sessions, backupSession)
	}

	for _, img := range images {
		doc.Images = append(doc.Images, models.BackupImage{
			ID:           img.ID,
			Filename:     img.Filename,
			OriginalName: img.OriginalName,
			ImageName:    img.ImageName,
			CreatedAt:    img.CreatedAt,
		})
	}

	doc.Statistics = models.BackupStatistics{
		TotalSessions:         len(sessions),
		TotalSkillGrowths:     len(skillRows),
		TotalSanityLoss:       totalSanityLoss,
		TotalInsanitySymptoms: len(symptomRows),
		TotalImages:           len(images),
	}

	metrics.BackupsExported.Inc()
	s.logger.Info("Backup exported",
		zap.String("character_id", characterID.String()),
		zap.Int("sessions", len(sessions)))
	return doc, nil
}

func (s *backupService) Restore(ctx context.Context, characterID uuid.UUID, doc *models.BackupDocument) (*models.Character, error) {
	// Structural validation happens before any write.
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var restored *models.Character
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, q interfaces.DBTX) error {
		character, err := s.characterRepo.GetByID(ctx, q, characterID)
		if err != nil {
			return err
		}

		// History teardown runs child-first so no FK is ever dangling.
		if err := s.historyRepo.DeleteSymptomsByCharacter(ctx, q, characterID); err != nil {
			return err
		}
		if err := s.historyRepo.DeleteSanityByCharacter(ctx, q, characterID); err != nil {
			return err
		}
		if err := s.historyRepo.DeleteSkillByCharacter(ctx, q, characterID); err != nil {
			return err
		}
		if err := s.sessionRepo.DeleteByCharacter(ctx, q, characterID); err != nil {
			return err
		}

		applyBackupCharacter(character, doc.Character)
		if err := s.characterRepo.Update(ctx, q, character); err != nil {
			return err
		}

		for i := range doc.Sessions {
			if err := s.restoreSession(ctx, q, characterID, &doc.Sessions[i]); err != nil {
				return err
			}
		}

		restored = character
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BackupsRestored.Inc()
	s.logger.Info("Backup restored",
		zap.String("character_id", characterID.String()),
		zap.Int("sessions", len(doc.Sessions)))
	return restored, nil
}

func (s *backupService) restoreSession(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID, backup *models.BackupSession) error {
	if backup.Scenario.Title == "" {
		return fmt.Errorf("session %s: %w", backup.ID, models.ErrInvalidBackup)
	}

	scenario, err := s.scenarioRepo.FindByTitle(ctx, q, backup.Scenario.Title)
	if errors.Is(err, models.ErrScenarioNotFound) {
		scenario = &models.Scenario{
			Title:       backup.Scenario.Title,
			Author:      backup.Scenario.Author,
			Description: backup.Scenario.Description,
		}
		err = s.scenarioRepo.Create(ctx, q, scenario)
	}
	if err != nil {
		return err
	}

	session := &models.Session{
		CharacterID:  characterID,
		ScenarioID:   scenario.ID,
		KPName:       backup.KPName,
		PlayDate:     backup.PlayDate,
		Participants: backup.Participants,
		Memo:         backup.Memo,
	}
	if err := s.sessionRepo.Create(ctx, q, session); err != nil {
		return err
	}

	for _, row := range backup.SkillHistories {
		history := &models.SkillHistory{
			CharacterID: characterID,
			SessionID:   session.ID,
			SkillName:   row.SkillName,
			OldValue:    row.OldValue,
			NewValue:    row.NewValue,
			Reason:      row.Reason,
		}
		if err := s.historyRepo.CreateSkillHistory(ctx, q, history); err != nil {
			return err
		}
	}
	for _, row := range backup.SanityHistories {
		history := &models.SanityHistory{
			CharacterID: characterID,
			SessionID:   session.ID,
			OldValue:    row.OldValue,
			NewValue:    row.NewValue,
			Reason:      row.Reason,
		}
		if err := s.historyRepo.CreateSanityHistory(ctx, q, history); err != nil {
			return err
		}
	}
	for _, row := range backup.InsanitySymptoms {
		symptom := &models.InsanitySymptom{
			CharacterID: characterID,
			SessionID:   session.ID,
			SymptomType: row.SymptomType,
			SymptomName: row.SymptomName,
			Description: row.Description,
			IsRecovered: row.IsRecovered,
			RecoveredAt: row.RecoveredAt,
		}
		if err := s.historyRepo.CreateSymptom(ctx, q, symptom); err != nil {
			return err
		}
	}
	return nil
}

// applyBackupCharacter overwrites the sheet state with the document's values,
// keeping the row identity and creation timestamp.
func applyBackupCharacter(dst *models.Character, src *models.BackupCharacter) {
	dst.Name = src.Name
	dst.Occupation = src.Occupation
	dst.Age = src.Age
	dst.Gender = src.Gender
	dst.Birthplace = src.Birthplace
	dst.Residence = src.Residence
	dst.Stats = src.Stats
	dst.DerivedStats = src.DerivedStats
	dst.Skills = src.Skills
	dst.Memo = src.Memo
	dst.IsLost = src.IsLost
}
