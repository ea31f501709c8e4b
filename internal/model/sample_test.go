package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedExtraction_Field(t *testing.T) {
	e := ExpectedExtraction{
		"caller_name": "Amina",
		"caller_age":  float64(32),
		"notes":       nil,
	}

	v, ok := e.Field("caller_name")
	assert.True(t, ok)
	assert.Equal(t, "Amina", v)

	v, ok = e.Field("caller_age")
	assert.True(t, ok)
	assert.Equal(t, float64(32), v)

	// Explicit null and missing keys both count as not provided.
	_, ok = e.Field("notes")
	assert.False(t, ok)
	_, ok = e.Field("missing")
	assert.False(t, ok)
}

func TestExpectedExtraction_RiskAccessors(t *testing.T) {
	e := ExpectedExtraction{
		"risk_level":      "Critical",
		"risk_indicators": []any{"weapon in home", "death threat"},
	}

	assert.Equal(t, "Critical", e.RiskLevel())
	assert.Equal(t, []string{"weapon in home", "death threat"}, e.RiskIndicators())

	empty := ExpectedExtraction{}
	assert.Equal(t, "", empty.RiskLevel())
	assert.Empty(t, empty.RiskIndicators())
}

func TestReferenceSample_UnmarshalJSON(t *testing.T) {
	raw := `{
		"call_id": "CALL_2024_0001",
		"language": "English",
		"duration_seconds": 120,
		"transcript": "Counselor: hello",
		"risk_level_actual": "High",
		"expected_extraction": {
			"caller_name": "Amina",
			"risk_level": "High",
			"risk_indicators": ["bruises observed"]
		}
	}`

	var s ReferenceSample
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "CALL_2024_0001", s.CallID)
	assert.Equal(t, 120, s.DurationSeconds)
	assert.Equal(t, "High", s.Expected.RiskLevel())
	assert.Equal(t, []string{"bruises observed"}, s.Expected.RiskIndicators())

	v, ok := s.Expected.Field("caller_name")
	assert.True(t, ok)
	assert.Equal(t, "Amina", v)
}
