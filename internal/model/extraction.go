package model

// ExtractionRequest is the inbound payload for a transcript extraction.
// CallID and Language are optional; the pipeline fills defaults.
type ExtractionRequest struct {
	Transcript string `json:"transcript"`
	CallID     string `json:"call_id,omitempty"`
	Language   string `json:"language,omitempty"`
}

// FieldExtraction is one field's raw extractor output. A nil Value means
// the transcript did not determine the field, and Confidence must be 0.
type FieldExtraction struct {
	Value         any     `json:"value"`
	EvidenceQuote string  `json:"evidence_quote"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// RiskFlag is a severity-tagged harm indicator detected in a transcript.
type RiskFlag struct {
	Severity        string `json:"severity"`
	Indicator       string `json:"indicator"`
	EvidenceQuote   string `json:"evidence_quote"`
	SuggestedAction string `json:"suggested_action"`
}

// ExtractionSummary tallies field outcomes for one extraction. The three
// outcome counts never exceed TotalFields, which equals the schema size.
type ExtractionSummary struct {
	TotalFields     int `json:"total_fields"`
	FieldsExtracted int `json:"fields_extracted"`
	FieldsUncertain int `json:"fields_uncertain"`
	FieldsMissing   int `json:"fields_missing"`
}

// RawExtraction is the shape both extractors produce before normalization.
type RawExtraction struct {
	ExtractedFields map[string]FieldExtraction `json:"extracted_fields"`
	RiskFlags       []RiskFlag                 `json:"risk_flags"`
	Summary         ExtractionSummary          `json:"extraction_summary"`
}

// Evidence is the per-field support record in the normalized response.
type Evidence struct {
	Quote      string  `json:"quote"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// NormalizedResponse is the stable response contract. It is the only
// extraction entity that crosses the system boundary.
type NormalizedResponse struct {
	CallID           string              `json:"call_id"`
	ExtractedData    map[string]any      `json:"extracted_data"`
	Evidence         map[string]Evidence `json:"evidence"`
	RiskFlags        []RiskFlag          `json:"risk_flags"`
	ConfidenceScores map[string]float64  `json:"confidence_scores"`
	ProcessingTimeMS int64               `json:"processing_time_ms"`
}
