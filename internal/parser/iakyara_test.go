package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `いあきゃら出力
【基本情報】
名前: 山田太郎 (やまだたろう)
職業: 私立探偵
年齢: 28 / 性別: 男
出身: 東京

【能力値】
STR 13
CON 12
POW 14
DEX 10
APP 9
SIZ 12
INT 15
EDU 16
幸運 70
HP 11
MP 14
SAN 65
現在SAN値 65 / 70

【技能値】
目星 65 25
図書館 60 20
クトゥルフ神話 15 0
謎の技能 99 0

【メモ】
一行目のメモ

二行目のメモ
`

func TestParseCharacterTextBasicInfo(t *testing.T) {
	result := ParseCharacterText(sampleExport)

	require.True(t, result.Recognized())
	assert.Equal(t, "山田太郎", result.Name, "trailing reading is stripped")
	assert.Equal(t, "私立探偵", result.Occupation)
	require.NotNil(t, result.Age)
	assert.Equal(t, 28, *result.Age)
	assert.Equal(t, "男", result.Gender)
	assert.Equal(t, "東京", result.Birthplace)
}

func TestParseCharacterTextStats(t *testing.T) {
	result := ParseCharacterText(sampleExport)

	assert.Equal(t, 13, result.Stats.Str)
	assert.Equal(t, 12, result.Stats.Con)
	assert.Equal(t, 14, result.Stats.Pow)
	assert.Equal(t, 12, result.Stats.Siz)
	assert.Equal(t, 70, result.Stats.Luck)

	// Current values come from the text verbatim.
	assert.Equal(t, 11, result.DerivedStats.HP)
	assert.Equal(t, 11, result.DerivedStats.MaxHP)
	assert.Equal(t, 14, result.DerivedStats.MP)
	assert.Equal(t, 65, result.DerivedStats.San)
}

func TestParseCharacterTextMovBuildRecomputed(t *testing.T) {
	result := ParseCharacterText(sampleExport)

	// STR 13 > SIZ 12 but DEX 10 < SIZ 12, so the tie-break baseline applies.
	assert.Equal(t, 8, result.DerivedStats.Mov)
	// STR+SIZ = 25 <= 64.
	assert.Equal(t, -2, result.DerivedStats.Build)
}

func TestParseCharacterTextMythosReducesMaxSan(t *testing.T) {
	result := ParseCharacterText(sampleExport)

	// Max SAN 70 from the current/max line, minus mythos 15.
	assert.Equal(t, 55, result.DerivedStats.MaxSan)
	assert.Equal(t, 15, result.Skills["cthulhuMythos"])
}

func TestParseCharacterTextSkills(t *testing.T) {
	result := ParseCharacterText(sampleExport)

	assert.Equal(t, 65, result.Skills["spotHidden"])
	assert.Equal(t, 60, result.Skills["libraryUse"])
	// Unknown labels are dropped, defaults stay in place.
	assert.NotContains(t, result.Skills, "謎の技能")
	assert.Equal(t, 25, result.Skills["fight"], "unlisted skills keep catalog defaults")
}

func TestParseCharacterTextMemoVerbatim(t *testing.T) {
	result := ParseCharacterText(sampleExport)
	assert.Equal(t, "一行目のメモ\n二行目のメモ", result.Memo)
}

func TestParseCharacterTextMissingName(t *testing.T) {
	result := ParseCharacterText("【能力値】\nSTR 10\n")
	assert.False(t, result.Recognized())
	assert.Equal(t, 10, result.Stats.Str, "other sections still parse")
}

func TestParseCharacterTextLinesBeforeAnyHeaderIgnored(t *testing.T) {
	result := ParseCharacterText("名前: 無視される\nSTR 99\n【基本情報】\n名前: 本命\n")
	assert.Equal(t, "本命", result.Name)
	assert.Equal(t, 0, result.Stats.Str)
}

func TestParseCharacterTextMythosCannotPushMaxSanNegative(t *testing.T) {
	text := "【基本情報】\n名前: テスト\n【能力値】\n現在SAN値 5 / 10\n【技能値】\nクトゥルフ神話 40 0\n"
	result := ParseCharacterText(text)
	assert.Equal(t, 0, result.DerivedStats.MaxSan)
}
