package models

import (
	"time"

	"github.com/google/uuid"
)

// BackupVersion is the current backup document format version.
const BackupVersion = "1.0"

// BackupDocument is the versioned portable export of one character: current
// sheet state, the full session history with nested audit rows, and image
// metadata (never image bytes).
type BackupDocument struct {
	Version    string           `json:"version"`
	ExportDate time.Time        `json:"exportDate"`
	Character  *BackupCharacter `json:"character"`
	Sessions   []BackupSession  `json:"sessions"`
	Images     []BackupImage    `json:"images"`
	Statistics BackupStatistics `json:"statistics"`
}

// BackupCharacter mirrors the character row at export time.
type BackupCharacter struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Occupation *string   `json:"occupation,omitempty"`
	Age        *int      `json:"age,omitempty"`
	Gender     *string   `json:"gender,omitempty"`
	Birthplace *string   `json:"birthplace,omitempty"`
	Residence  *string   `json:"residence,omitempty"`

	Stats        AbilityScores `json:"stats"`
	DerivedStats DerivedStats  `json:"derivedStats"`
	Skills       SkillSet      `json:"skills"`
	Memo         *string       `json:"memo,omitempty"`
	IsLost       bool          `json:"isLost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BackupScenario carries the scenario by value; restore resolves it back to a
// row by exact title match, creating one when absent.
type BackupScenario struct {
	Title       string  `json:"title"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
}

// BackupSession is one session with its nested history. Recorded values
// are historical facts and are never recomputed on restore.
type BackupSession struct {
	ID               uuid.UUID             `json:"id"`
	PlayDate         time.Time             `json:"playDate"`
	KPName           *string               `json:"kpName,omitempty"`
	Participants     *string               `json:"participants,omitempty"`
	Memo             *string               `json:"memo,omitempty"`
	Scenario         BackupScenario        `json:"scenario"`
	SkillHistories   []BackupSkillHistory  `json:"skillHistories"`
	SanityHistories  []BackupSanityHistory `json:"sanityHistories"`
	InsanitySymptoms []BackupSymptom       `json:"insanitySymptoms"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type BackupSkillHistory struct {
	SkillName string    `json:"skillName"`
	OldValue  int       `json:"oldValue"`
	NewValue  int       `json:"newValue"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

type BackupSanityHistory struct {
	OldValue  int       `json:"oldValue"`
	NewValue  int       `json:"newValue"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

type BackupSymptom struct {
	SymptomType SymptomType `json:"symptomType"`
	SymptomName string      `json:"symptomName"`
	Description *string     `json:"description,omitempty"`
	IsRecovered bool        `json:"isRecovered"`
	RecoveredAt *time.Time  `json:"recoveredAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// BackupImage is portrait metadata only; the stored blob is not exported.
type BackupImage struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	ImageName    *string   `json:"imageName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BackupStatistics summarizes the exported history.
type BackupStatistics struct {
	TotalSessions         int `json:"totalSessions"`
	TotalSkillGrowths     int `json:"totalSkillGrowths"`
	TotalSanityLoss       int `json:"totalSanityLoss"`
	TotalInsanitySymptoms int `json:"totalInsanitySymptoms"`
	TotalImages           int `json:"totalImages"`
}

// Validate performs the fail-fast structural check a restore requires before
// any mutation begins.
func (d *BackupDocument) Validate() error {
	if d.Version == "" || d.Character == nil {
		return ErrInvalidBackup
	}
	return nil
}
