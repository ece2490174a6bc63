package models

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a named adventure module. Scenarios are deduplicated by exact
// title at session-recording time ("first title wins"); the title is a lookup
// key, not a storage-level unique constraint. Two concurrent sessions
// introducing the same brand-new title can legitimately create two rows.
type Scenario struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Author      *string   `db:"author" json:"author,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Session is one played sitting of a character through a scenario. It owns
// the skill/sanity/madness history rows created by the same sitting.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CharacterID  uuid.UUID `db:"character_id" json:"characterId"`
	ScenarioID   uuid.UUID `db:"scenario_id" json:"scenarioId"`
	KPName       *string   `db:"kp_name" json:"kpName,omitempty"`
	PlayDate     time.Time `db:"play_date" json:"playDate"`
	Participants *string   `db:"participants" json:"participants,omitempty"`
	Memo         *string   `db:"memo" json:"memo,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	// Nested data, populated by the session list read.
	Scenario         *Scenario         `db:"-" json:"scenario,omitempty"`
	SkillHistories   []SkillHistory    `db:"-" json:"skillHistories,omitempty"`
	SanityHistories  []SanityHistory   `db:"-" json:"sanityHistories,omitempty"`
	InsanitySymptoms []InsanitySymptom `db:"-" json:"insanitySymptoms,omitempty"`
}

// SkillHistory records one skill's before/after change within a session.
// Rows are immutable after creation; they are audit trail, not state.
type SkillHistory struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CharacterID uuid.UUID `db:"character_id" json:"characterId"`
	SessionID   uuid.UUID `db:"session_id" json:"sessionId"`
	SkillName   string    `db:"skill_name" json:"skillName"`
	OldValue    int       `db:"old_value" json:"oldValue"`
	NewValue    int       `db:"new_value" json:"newValue"`
	Reason      string    `db:"reason" json:"reason"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// SanityHistory records a before/after sanity change within a session.
// Same immutability contract as SkillHistory.
type SanityHistory struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CharacterID uuid.UUID `db:"character_id" json:"characterId"`
	SessionID   uuid.UUID `db:"session_id" json:"sessionId"`
	OldValue    int       `db:"old_value" json:"oldValue"`
	NewValue    int       `db:"new_value" json:"newValue"`
	Reason      string    `db:"reason" json:"reason"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// SymptomType classifies a madness manifestation.
type SymptomType string

const (
	SymptomIndefinite SymptomType = "indefinite"
	SymptomPhobia     SymptomType = "phobia"
	SymptomMania      SymptomType = "mania"
)

// Valid reports whether the type is one of the known symptom kinds.
func (t SymptomType) Valid() bool {
	switch t {
	case SymptomIndefinite, SymptomPhobia, SymptomMania:
		return true
	}
	return false
}

// InsanitySymptom is a recorded madness manifestation tied to a session.
// Append-only except for the recovered flag and its timestamp.
type InsanitySymptom struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	CharacterID uuid.UUID   `db:"character_id" json:"characterId"`
	SessionID   uuid.UUID   `db:"session_id" json:"sessionId"`
	SymptomType SymptomType `db:"symptom_type" json:"symptomType"`
	SymptomName string      `db:"symptom_name" json:"symptomName"`
	Description *string     `db:"description" json:"description,omitempty"`
	IsRecovered bool        `db:"is_recovered" json:"isRecovered"`
	RecoveredAt *time.Time  `db:"recovered_at" json:"recoveredAt,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}
