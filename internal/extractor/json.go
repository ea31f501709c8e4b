package extractor

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/openchs/intake/pkg/anthropic"
)

// replySchemaJSON is the contract a live extraction reply must satisfy
// before it is accepted. A violating reply triggers the demo fallback.
const replySchemaJSON = `{
  "type": "object",
  "required": ["extracted_fields", "risk_flags", "extraction_summary"],
  "properties": {
    "extracted_fields": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["value", "confidence"],
        "properties": {
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "evidence_quote": {"type": ["string", "null"]},
          "reasoning": {"type": ["string", "null"]}
        }
      }
    },
    "risk_flags": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["severity", "indicator"],
        "properties": {
          "severity": {"enum": ["critical", "high", "medium"]}
        }
      }
    },
    "extraction_summary": {
      "type": "object",
      "required": ["total_fields", "fields_extracted", "fields_uncertain", "fields_missing"]
    }
  }
}`

var replySchema = jsonschema.MustCompileString("reply_schema.json", replySchemaJSON)

// extractText concatenates the text blocks of a message response.
func extractText(resp *anthropic.MessageResponse) string {
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
