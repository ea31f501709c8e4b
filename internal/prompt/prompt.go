// Package prompt builds the structured-extraction instruction payload
// sent to the live extraction service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/openchs/intake/internal/model"
)

// maxKeywordsPerTier caps how many risk keywords per severity tier are
// embedded in the prompt. Fixed truncation keeps the prompt bounded.
const maxKeywordsPerTier = 10

const extractionPrompt = `You are an AI assistant helping counselors document cases of gender-based violence (GBV) and child abuse.

You will be given a transcript of a call between a counselor and a survivor. Your task is to extract structured information to fill out a case management form.

FORM FIELDS TO EXTRACT:
%s

RISK DETECTION KEYWORDS (flag if present):
- CRITICAL: %s
- HIGH: %s
- MEDIUM: %s

INSTRUCTIONS:
1. Extract information for each field from the transcript
2. For each extracted value, provide the exact quote from the transcript that supports it, a confidence score (0.0-1.0), and brief reasoning
3. Use a null value with confidence 0.0 for any field the transcript does not determine
4. Detect any risk indicators and flag them with severity level
5. Be culturally sensitive and trauma-informed in your analysis

TRANSCRIPT:
%s

Respond ONLY with a valid JSON object in this exact format:
{
  "extracted_fields": {
    "<field_id>": {
      "value": "extracted value or null",
      "evidence_quote": "exact quote from transcript",
      "confidence": 0.95,
      "reasoning": "brief explanation"
    }
  },
  "risk_flags": [
    {
      "severity": "critical|high|medium",
      "indicator": "description of risk",
      "evidence_quote": "exact quote",
      "suggested_action": "what should be done"
    }
  ],
  "extraction_summary": {
    "total_fields": %d,
    "fields_extracted": 0,
    "fields_uncertain": 0,
    "fields_missing": 0
  }
}

Remember: every value must be supported by evidence from the transcript. Do not infer information that is not explicitly stated.`

// Build constructs the extraction prompt for a transcript and schema.
// Pure string construction; an empty transcript is legal.
func Build(transcript string, schema *model.FormSchema) string {
	return fmt.Sprintf(extractionPrompt,
		formatFields(schema.Fields),
		joinHead(schema.RiskKeywords.Critical),
		joinHead(schema.RiskKeywords.High),
		joinHead(schema.RiskKeywords.Medium),
		transcript,
		schema.FieldCount(),
	)
}

// formatFields renders one line per field, with the allowed option list
// appended for choice-typed fields.
func formatFields(fields []model.FieldSchema) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s): %s", f.FieldID, f.FieldName, f.Description)
		if f.IsChoice() {
			fmt.Fprintf(&b, "\n  Options: %s", strings.Join(f.Options, ", "))
		}
	}
	return b.String()
}

// joinHead joins up to maxKeywordsPerTier keywords with commas.
func joinHead(keywords []string) string {
	if len(keywords) > maxKeywordsPerTier {
		keywords = keywords[:maxKeywordsPerTier]
	}
	return strings.Join(keywords, ", ")
}
