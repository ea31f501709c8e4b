package model

// ExpectedExtraction is a reference sample's known-correct answer: a
// field_id → value mapping plus the reserved risk_level and
// risk_indicators keys.
type ExpectedExtraction map[string]any

// Field returns the expected value for a field ID. Missing keys and
// explicit JSON nulls both report ok=false.
func (e ExpectedExtraction) Field(id string) (any, bool) {
	v, ok := e[id]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// RiskLevel returns the sample's overall risk level ("Critical", "High",
// "Medium", "Low"), or "" if unset.
func (e ExpectedExtraction) RiskLevel() string {
	s, _ := e["risk_level"].(string)
	return s
}

// RiskIndicators returns the sample's listed risk indicators.
func (e ExpectedExtraction) RiskIndicators() []string {
	raw, _ := e["risk_indicators"].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ReferenceSample is a pre-authored transcript with a known-correct
// extraction. The demo extractor synthesizes its answers from the best
// matching sample. Loaded once at startup, immutable thereafter.
type ReferenceSample struct {
	CallID          string             `json:"call_id"`
	Language        string             `json:"language"`
	DurationSeconds int                `json:"duration_seconds"`
	Transcript      string             `json:"transcript"`
	RiskLevelActual string             `json:"risk_level_actual"`
	Expected        ExpectedExtraction `json:"expected_extraction"`
}
