package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openchs/intake/internal/model"
)

func testSchema() *model.FormSchema {
	return model.NewFormSchema("1.0", []model.FieldSchema{
		{FieldID: "caller_name", FieldName: "Caller Name", Description: "Name of the caller", Type: model.TypeText},
		{FieldID: "risk_level", FieldName: "Risk Level", Description: "Assessed risk", Type: model.TypeSelect, Options: []string{"Critical", "High", "Medium", "Low"}},
		{FieldID: "services_needed", FieldName: "Services Needed", Description: "Support services", Type: model.TypeMultiSelect, Options: []string{"Shelter", "Counseling"}},
		{FieldID: "counselor_notes", FieldName: "Counselor Notes", Description: "Observations", Type: model.TypeTextarea},
	}, model.RiskKeywords{
		Critical: []string{"kill", "weapon", "gun"},
		High:     []string{"hit", "beat"},
		Medium:   []string{"shout"},
	})
}

func TestBuild_ContainsTranscriptVerbatim(t *testing.T) {
	transcript := "Caller: My name is Amina.\nCounselor: Thank you, Amina."
	p := Build(transcript, testSchema())

	assert.Contains(t, p, transcript)
}

func TestBuild_EnumeratesEveryField(t *testing.T) {
	s := testSchema()
	p := Build("some transcript", s)

	for _, f := range s.Fields {
		assert.Contains(t, p, f.FieldID)
		assert.Contains(t, p, f.FieldName)
		assert.Contains(t, p, f.Description)
	}
}

func TestBuild_ChoiceFieldsListOptions(t *testing.T) {
	p := Build("transcript", testSchema())

	assert.Contains(t, p, "Options: Critical, High, Medium, Low")
	assert.Contains(t, p, "Options: Shelter, Counseling")
	// Non-choice fields get no options line.
	assert.NotContains(t, p, "caller_name (Caller Name): Name of the caller\n  Options")
}

func TestBuild_TruncatesKeywordsPerTier(t *testing.T) {
	keywords := make([]string, 15)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("critword%02d", i)
	}
	s := model.NewFormSchema("1.0", []model.FieldSchema{
		{FieldID: "caller_name", FieldName: "Caller Name", Type: model.TypeText},
	}, model.RiskKeywords{Critical: keywords, High: []string{"hit"}, Medium: []string{"shout"}})

	p := Build("transcript", s)

	assert.Contains(t, p, "critword09")
	assert.NotContains(t, p, "critword10")
	assert.NotContains(t, p, "critword14")
}

func TestBuild_OutputFormatInstructions(t *testing.T) {
	p := Build("transcript", testSchema())

	assert.Contains(t, p, `"extracted_fields"`)
	assert.Contains(t, p, `"evidence_quote"`)
	assert.Contains(t, p, `"confidence"`)
	assert.Contains(t, p, `"reasoning"`)
	assert.Contains(t, p, `"risk_flags"`)
	assert.Contains(t, p, `"severity"`)
	assert.Contains(t, p, `"suggested_action"`)
	assert.Contains(t, p, `"extraction_summary"`)
	assert.Contains(t, p, `"total_fields": 4`)
	// Evidentiary rule.
	assert.Contains(t, p, "Do not infer information that is not explicitly stated")
}

func TestBuild_EmptyTranscript(t *testing.T) {
	p := Build("", testSchema())

	assert.Contains(t, p, "TRANSCRIPT:\n\n")
	assert.Contains(t, p, "caller_name")
}

func TestBuild_Deterministic(t *testing.T) {
	s := testSchema()
	assert.Equal(t, Build("same input", s), Build("same input", s))
	assert.True(t, strings.Contains(Build("x", s), "RISK DETECTION KEYWORDS"))
}
