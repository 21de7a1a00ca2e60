package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskThresholds_Classify(t *testing.T) {
	th := DefaultRiskThresholds()

	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{0.4999, RiskLow},
		{0.5, RiskMedium},
		{0.6999, RiskMedium},
		{0.7, RiskHigh},
		{0.8499, RiskHigh},
		{0.85, RiskVeryHigh},
		{1, RiskVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Classify(tt.score), "score %v", tt.score)
	}
}

func TestRiskLevel_Text(t *testing.T) {
	for _, r := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskVeryHigh} {
		parsed, err := ParseRiskLevel(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	data, err := json.Marshal(struct {
		Risk RiskLevel `json:"risk"`
	}{RiskVeryHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk":"very_high"}`, string(data))

	_, err = ParseRiskLevel("extreme")
	assert.Error(t, err)
}

func TestFusionWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultFusionWeights().Validate())

	w := DefaultFusionWeights()
	w.Semantic = 0.9
	assert.Error(t, w.Validate())

	w = FusionWeights{Semantic: -0.1, Structural: 0.5, Lexical: 0.5, TokenSequence: 0.1}
	assert.Error(t, w.Validate())
}

func TestRiskThresholds_Validate(t *testing.T) {
	assert.Error(t, RiskThresholds{Medium: 0.8, High: 0.7, VeryHigh: 0.9}.Validate())
	assert.Error(t, RiskThresholds{Medium: 0.5, High: 0.7, VeryHigh: 1.2}.Validate())
	assert.NoError(t, RiskThresholds{Medium: 0.4, High: 0.6, VeryHigh: 0.8}.Validate())
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("code", "x = 1", 0))

	err := ValidateContent("code", " \n\t", 0)
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))

	err = ValidateContent("code", strings.Repeat("a", 11), 10)
	assert.Equal(t, ErrCodeContentTooLarge, ErrorCode(err))
	assert.True(t, IsInputError(err))

	err = ValidateContent("code", "a\x00b", 0)
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
}

func TestLanguageHelpers(t *testing.T) {
	lang, err := ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, LanguageAuto, lang)

	lang, err = ParseLanguage(" C++ ")
	require.NoError(t, err)
	assert.Equal(t, LanguageCPP, lang)

	_, err = ParseLanguage("cobol")
	assert.Equal(t, ErrCodeUnsupportedLanguage, ErrorCode(err))

	assert.Equal(t, LanguageTypeScript, LanguageFromFilename("src/App.TSX"))
	assert.Equal(t, LanguageUnknown, LanguageFromFilename("README.md"))

	assert.True(t, LanguageGo.IsConcrete())
	assert.False(t, LanguageAuto.IsConcrete())
	assert.False(t, LanguageUnknown.IsConcrete())

	assert.NoError(t, ValidateLanguage(LanguageAuto))
	assert.Error(t, ValidateLanguage(Language("cobol")))
}

func TestRequestValidation(t *testing.T) {
	assert.NoError(t, (&CompareRequest{Code1: "a", Code2: "b"}).Validate())
	assert.Error(t, (&CompareRequest{Code1: "a", Code2: ""}).Validate())

	assert.Error(t, (&BatchCompareRequest{Submissions: []CodeSubmission{{Content: "a"}}}).Validate())
	assert.Error(t, (&BatchCompareRequest{
		Submissions: []CodeSubmission{{Content: "a"}, {Content: "b"}},
		MinScore:    1.5,
	}).Validate())

	assert.Error(t, (&SearchRequest{Code: "a", TopK: -1}).Validate())
	assert.NoError(t, (&AddRequest{Code: "a", Language: LanguagePython}).Validate())
}
