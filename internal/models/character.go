package models

import (
	"time"

	"github.com/google/uuid"
)

// AbilityScores holds the nine rolled ability scores of an investigator.
// Values are percentile-style bounded integers; validation happens at the
// API boundary, not here.
type AbilityScores struct {
	Str  int `db:"str" json:"str"`
	Con  int `db:"con" json:"con"`
	Pow  int `db:"pow" json:"pow"`
	Dex  int `db:"dex" json:"dex"`
	App  int `db:"app" json:"app"`
	Siz  int `db:"siz" json:"siz"`
	Int  int `db:"int" json:"int"`
	Edu  int `db:"edu" json:"edu"`
	Luck int `db:"luck" json:"luck"`
}

// DerivedStats are the attributes computed from ability scores (HP, MP, SAN,
// movement rate and build). Current values can diverge from the pristine
// formulas once a character has been played.
type DerivedStats struct {
	HP     int `db:"hp" json:"hp"`
	MaxHP  int `db:"max_hp" json:"maxHp"`
	MP     int `db:"mp" json:"mp"`
	MaxMP  int `db:"max_mp" json:"maxMp"`
	San    int `db:"san" json:"san"`
	MaxSan int `db:"max_san" json:"maxSan"`
	Mov    int `db:"mov" json:"mov"`
	Build  int `db:"build" json:"build"`
}

// SkillSet maps a skill key to its current percentile value. Keys normally
// come from the known skill catalog but homebrew keys are allowed; the set is
// stored as JSONB.
type SkillSet map[string]int

// Clone returns an independent copy of the skill set.
func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Character is an investigator sheet: identity, ability scores, derived
// attributes and the authoritative current skill values. History rows are an
// audit trail derived from this state, never the other way around.
type Character struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Occupation *string   `db:"occupation" json:"occupation,omitempty"`
	Age        *int      `db:"age" json:"age,omitempty"`
	Gender     *string   `db:"gender" json:"gender,omitempty"`
	Birthplace *string   `db:"birthplace" json:"birthplace,omitempty"`
	Residence  *string   `db:"residence" json:"residence,omitempty"`

	Stats        AbilityScores `db:"" json:"stats"`
	DerivedStats DerivedStats  `db:"" json:"derivedStats"`

	Skills SkillSet `db:"skills" json:"skills"`
	Memo   *string  `db:"memo" json:"memo,omitempty"`
	IsLost bool     `db:"is_lost" json:"isLost"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Images is populated only by the detail read.
	Images []CharacterImage `db:"-" json:"images,omitempty"`
}

// Character list statuses, computed from session history.
const (
	CharacterStatusNew      = "new"
	CharacterStatusActive   = "active"
	CharacterStatusInactive = "inactive"
)

// ActivityWindow is how recently a character must have been played to count
// as active in the list read-model.
const ActivityWindow = 30 * 24 * time.Hour

// CharacterSummary is the list read-model: core identity plus play statistics
// computed from the session history.
type CharacterSummary struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Occupation     *string    `db:"occupation" json:"occupation,omitempty"`
	Age            *int       `db:"age" json:"age,omitempty"`
	San            int        `db:"san" json:"san"`
	MaxSan         int        `db:"max_san" json:"maxSan"`
	IsLost         bool       `db:"is_lost" json:"isLost"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
	LastPlayDate   *time.Time `db:"last_play_date" json:"lastPlayDate"`
	LastScenario   *string    `db:"last_scenario" json:"lastScenario"`
	SessionCount   int        `db:"session_count" json:"sessionCount"`
	ActiveSymptoms int        `db:"active_symptoms" json:"activeSymptoms"`
	Status         string     `db:"-" json:"status"`
}

// ComputeStatus derives the list status from the session statistics at the
// given reference time.
func (s *CharacterSummary) ComputeStatus(now time.Time) {
	switch {
	case s.SessionCount == 0:
		s.Status = CharacterStatusNew
	case s.LastPlayDate != nil && now.Sub(*s.LastPlayDate) <= ActivityWindow:
		s.Status = CharacterStatusActive
	default:
		s.Status = CharacterStatusInactive
	}
}
