package models

// DefaultSkills returns the baseline percentile values of the known skill
// catalog (6th edition defaults). New characters and text imports start from
// this set; homebrew keys can be added on top of it.
func DefaultSkills() SkillSet {
	return SkillSet{
		"dodge":                 0,
		"fight":                 25,
		"firearms":              20,
		"accounting":            5,
		"anthropology":          1,
		"archaeology":           1,
		"art":                   5,
		"charm":                 15,
		"climb":                 20,
		"creditRating":          0,
		"cthulhuMythos":         0,
		"disguise":              5,
		"electricalRepair":      10,
		"fastTalk":              5,
		"firstAid":              30,
		"history":               5,
		"intimidate":            15,
		"jump":                  20,
		"languageOwn":           0,
		"law":                   5,
		"libraryUse":            20,
		"listen":                20,
		"locksmith":             1,
		"mechanicalRepair":      10,
		"medicine":              1,
		"naturalHistory":        10,
		"navigate":              10,
		"occult":                5,
		"operateHeavyMachinery": 1,
		"persuade":              10,
		"psychology":            10,
		"psychoanalysis":        1,
		"ride":                  5,
		"science":               1,
		"sleightOfHand":         10,
		"spotHidden":            25,
		"stealth":               20,
		"survival":              10,
		"swim":                  20,
		"throw":                 20,
		"track":                 10,
	}
}

// SkillKeyByLabel translates the Japanese skill labels used by the Iakyara
// export format into internal skill keys. Labels not present here are dropped
// by the import parser.
var SkillKeyByLabel = map[string]string{
	"回避":       "dodge",
	"こぶし（パンチ）": "fight",
	"拳銃":       "firearms",
	"経理":       "accounting",
	"人類学":      "anthropology",
	"考古学":      "archaeology",
	"芸術":       "art",
	"信用":       "charm",
	"登攀":       "climb",
	"変装":       "disguise",
	"電気修理":     "electricalRepair",
	"言いくるめ":    "fastTalk",
	"応急手当":     "firstAid",
	"歴史":       "history",
	"跳躍":       "jump",
	"母国語":      "languageOwn",
	"法律":       "law",
	"図書館":      "libraryUse",
	"聞き耳":      "listen",
	"鍵開け":      "locksmith",
	"機械修理":     "mechanicalRepair",
	"医学":       "medicine",
	"博物学":      "naturalHistory",
	"ナビゲート":    "navigate",
	"オカルト":     "occult",
	"重機械操作":    "operateHeavyMachinery",
	"説得":       "persuade",
	"心理学":      "psychology",
	"精神分析":     "psychoanalysis",
	"乗馬":       "ride",
	"化学":       "science",
	"隠す":       "sleightOfHand",
	"目星":       "spotHidden",
	"忍び歩き":     "stealth",
	"水泳":       "swim",
	"投擲":       "throw",
	"追跡":       "track",
}

// MythosSkillLabel is the export label of the Cthulhu Mythos skill, which
// gets special handling on import: its value erodes maximum sanity.
const MythosSkillLabel = "クトゥルフ神話"

// MythosSkillKey is the internal key of the Cthulhu Mythos skill.
const MythosSkillKey = "cthulhuMythos"
