// Package parser implements the plain-text import of Iakyara character
// exports. The format is line-oriented: bracketed section headers route the
// following lines to a section-specific matcher until the next header.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"investigator-server/internal/models"
	"investigator-server/internal/rules"
)

// section is the state of the line-routing machine.
type section int

const (
	sectionNone section = iota
	sectionBasic
	sectionStats
	sectionSkills
	sectionMemo
)

// Section header labels of the Iakyara export.
const (
	headerBasic  = "【基本情報】"
	headerStats  = "【能力値】"
	headerSkills = "【技能値】"
	headerMemo   = "【メモ】"
)

var (
	nameRe       = regexp.MustCompile(`名前:\s*(.+?)(?:\s*\(.*\))?$`)
	ageRe        = regexp.MustCompile(`年齢:\s*(\d+)`)
	genderRe     = regexp.MustCompile(`性別:\s*([^/\s]+)`)
	statRe       = regexp.MustCompile(`^(STR|CON|POW|DEX|APP|SIZ|INT|EDU|HP|MP|SAN|幸運)\s+(\d+)`)
	currentSanRe = regexp.MustCompile(`現在SAN値\s+(\d+)\s*/\s*(\d+)`)
	skillRe      = regexp.MustCompile(`^(\S+(?:\s+\S+)*)\s+(\d+)\s+\d+`)
)

// Result is the structured outcome of a parse. HP/MP/SAN current values are
// taken verbatim from the text (they reflect in-play state); Mov and Build
// are always recomputed from the parsed ability scores.
type Result struct {
	Name       string
	Occupation string
	Age        *int
	Gender     string
	Birthplace string

	Stats        models.AbilityScores
	Skills       models.SkillSet
	DerivedStats models.DerivedStats
	Memo         string
}

// Recognized reports whether the text looked like a character export at all.
// The parser never fails outright; absence of a name is the signal.
func (r *Result) Recognized() bool {
	return r.Name != ""
}

// ParseCharacterText runs the section state machine over the raw text dump.
// Unmatched lines are ignored; unknown skill labels are silently dropped.
func ParseCharacterText(text string) *Result {
	result := &Result{
		Skills: models.DefaultSkills(),
	}

	state := sectionNone
	var memoLines []string

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)

		if next, ok := matchHeader(line); ok {
			state = next
			continue
		}

		switch state {
		case sectionBasic:
			parseBasicLine(line, result)
		case sectionStats:
			parseStatLine(line, result)
		case sectionSkills:
			parseSkillLine(line, result)
		case sectionMemo:
			if line != "" {
				memoLines = append(memoLines, line)
			}
		}
	}

	// Movement and build always come from the formulas, never from the text.
	result.DerivedStats.Mov = rules.CalculateMov(result.Stats)
	result.DerivedStats.Build = rules.CalculateBuild(result.Stats.Str + result.Stats.Siz)

	result.Memo = strings.Join(memoLines, "\n")
	return result
}

func matchHeader(line string) (section, bool) {
	switch {
	case strings.Contains(line, headerBasic):
		return sectionBasic, true
	case strings.Contains(line, headerStats):
		return sectionStats, true
	case strings.Contains(line, headerSkills):
		return sectionSkills, true
	case strings.Contains(line, headerMemo):
		return sectionMemo, true
	}
	return sectionNone, false
}

func parseBasicLine(line string, result *Result) {
	switch {
	case strings.HasPrefix(line, "名前:"):
		if m := nameRe.FindStringSubmatch(line); m != nil {
			result.Name = strings.TrimSpace(m[1])
		}
	case strings.HasPrefix(line, "職業:"):
		if occupation := strings.TrimSpace(strings.TrimPrefix(line, "職業:")); occupation != "" {
			result.Occupation = occupation
		}
	case strings.Contains(line, "年齢:"):
		// Age and gender share one line.
		if m := ageRe.FindStringSubmatch(line); m != nil {
			if age, err := strconv.Atoi(m[1]); err == nil {
				result.Age = &age
			}
		}
		if m := genderRe.FindStringSubmatch(line); m != nil {
			result.Gender = strings.TrimSpace(m[1])
		}
	case strings.HasPrefix(line, "出身:"):
		if birthplace := strings.TrimSpace(strings.TrimPrefix(line, "出身:")); birthplace != "" {
			result.Birthplace = birthplace
		}
	}
}

func parseStatLine(line string, result *Result) {
	if m := statRe.FindStringSubmatch(line); m != nil {
		value, err := strconv.Atoi(m[2])
		if err == nil {
			switch m[1] {
			case "STR":
				result.Stats.Str = value
			case "CON":
				result.Stats.Con = value
			case "POW":
				result.Stats.Pow = value
			case "DEX":
				result.Stats.Dex = value
			case "APP":
				result.Stats.App = value
			case "SIZ":
				result.Stats.Siz = value
			case "INT":
				result.Stats.Int = value
			case "EDU":
				result.Stats.Edu = value
			case "幸運":
				result.Stats.Luck = value
			case "HP":
				// Current values are captured verbatim, not recomputed.
				result.DerivedStats.HP = value
				result.DerivedStats.MaxHP = value
			case "MP":
				result.DerivedStats.MP = value
				result.DerivedStats.MaxMP = value
			case "SAN":
				result.DerivedStats.San = value
			}
		}
	}

	if m := currentSanRe.FindStringSubmatch(line); m != nil {
		if maxSan, err := strconv.Atoi(m[2]); err == nil {
			result.DerivedStats.MaxSan = maxSan
		}
	}
}

func parseSkillLine(line string, result *Result) {
	m := skillRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	label := strings.TrimSpace(m[1])
	total, err := strconv.Atoi(m[2])
	if err != nil {
		return
	}

	if key, ok := models.SkillKeyByLabel[label]; ok {
		result.Skills[key] = total
	}

	// Mythos knowledge erodes maximum sanity on top of being a skill value.
	if label == models.MythosSkillLabel {
		result.Skills[models.MythosSkillKey] = total
		maxSan := result.DerivedStats.MaxSan - total
		if maxSan < 0 {
			maxSan = 0
		}
		result.DerivedStats.MaxSan = maxSan
	}
}
