// Package extractor implements the two extraction paths: the live
// Anthropic-backed extractor and the deterministic demo extractor it
// falls back to.
package extractor

import (
	"fmt"
	"strings"

	"github.com/openchs/intake/internal/model"
	"github.com/openchs/intake/internal/samples"
)

const (
	// matchPrefixLen is how many leading transcript characters are
	// compared when matching a reference sample.
	matchPrefixLen = 100

	// quoteContext is the evidence window size on each side of a located
	// value occurrence.
	quoteContext = 20

	confidenceDefault   = 0.92
	confidenceNarrative = 0.85
)

// Fixed suggested actions per risk severity.
const (
	actionCritical = "Immediate intervention required"
	actionHigh     = "Elevated monitoring needed"
)

// Demo is the deterministic, schema-aware extractor. It matches the
// transcript against the reference library and synthesizes field values,
// quotes, and risk flags from the matched sample's known-correct answer.
type Demo struct {
	schema  *model.FormSchema
	library *samples.Library
}

// NewDemo creates a demo extractor over an immutable schema and library.
func NewDemo(schema *model.FormSchema, library *samples.Library) *Demo {
	return &Demo{schema: schema, library: library}
}

// Extract produces a raw extraction for the transcript. Deterministic:
// the same transcript always yields the same result.
func (d *Demo) Extract(transcript string) *model.RawExtraction {
	sample := d.matchSample(transcript)

	raw := &model.RawExtraction{
		ExtractedFields: make(map[string]model.FieldExtraction, d.schema.FieldCount()),
		RiskFlags:       []model.RiskFlag{},
		Summary: model.ExtractionSummary{
			TotalFields: d.schema.FieldCount(),
		},
	}

	for _, f := range d.schema.Fields {
		value, ok := sample.Expected.Field(f.FieldID)
		if !ok {
			raw.ExtractedFields[f.FieldID] = model.FieldExtraction{
				Value:      nil,
				Confidence: 0.0,
				Reasoning:  "Information not provided in call",
			}
			raw.Summary.FieldsMissing++
			continue
		}

		confidence := confidenceDefault
		if f.Type == model.TypeTextarea {
			confidence = confidenceNarrative
		}
		raw.ExtractedFields[f.FieldID] = model.FieldExtraction{
			Value:         value,
			EvidenceQuote: locateQuote(transcript, value, f.FieldID),
			Confidence:    confidence,
			Reasoning:     "Extracted from survivor's statement",
		}
		raw.Summary.FieldsExtracted++
	}

	raw.RiskFlags = riskFlags(sample.Expected)

	return raw
}

// matchSample selects the reference sample whose leading transcript
// characters appear in the candidate's leading characters, defaulting to
// the first sample in library order. The prefix rule is simplistic and
// order-dependent but kept for compatibility with existing references.
func (d *Demo) matchSample(transcript string) model.ReferenceSample {
	all := d.library.All()
	candidate := head(transcript, matchPrefixLen)
	for _, s := range all {
		if strings.Contains(candidate, head(s.Transcript, matchPrefixLen)) {
			return s
		}
	}
	return all[0]
}

// locateQuote finds the value's occurrence in the transcript, preferring
// an exact match over a case-insensitive one, and returns it with
// quoteContext characters of surrounding context. Non-string values and
// misses get a synthesized placeholder.
func locateQuote(transcript string, value any, fieldID string) string {
	s, ok := value.(string)
	if !ok || s == "" {
		return placeholderQuote(fieldID)
	}

	idx := strings.Index(transcript, s)
	if idx < 0 {
		idx = strings.Index(strings.ToLower(transcript), strings.ToLower(s))
	}
	if idx < 0 {
		return placeholderQuote(fieldID)
	}

	start := idx - quoteContext
	if start < 0 {
		start = 0
	}
	end := idx + len(s) + quoteContext
	if end > len(transcript) {
		end = len(transcript)
	}
	return transcript[start:end]
}

func placeholderQuote(fieldID string) string {
	return fmt.Sprintf("[Quote extracted from transcript for %s]", fieldID)
}

// riskFlags emits one flag per listed indicator when the sample's risk
// level is Critical or High.
func riskFlags(expected model.ExpectedExtraction) []model.RiskFlag {
	flags := []model.RiskFlag{}

	severity, action := "", ""
	switch expected.RiskLevel() {
	case "Critical":
		severity, action = "critical", actionCritical
	case "High":
		severity, action = "high", actionHigh
	default:
		return flags
	}

	for _, indicator := range expected.RiskIndicators() {
		flags = append(flags, model.RiskFlag{
			Severity:        severity,
			Indicator:       indicator,
			EvidenceQuote:   "[Quote showing this risk indicator]",
			SuggestedAction: action,
		})
	}
	return flags
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
