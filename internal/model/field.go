package model

// Field types supported by the case form.
const (
	TypeText        = "text"
	TypeTextarea    = "textarea"
	TypeDate        = "date"
	TypeNumber      = "number"
	TypeSelect      = "select"
	TypeMultiSelect = "multi_select"
)

// FieldSchema describes one extractable case-form field.
type FieldSchema struct {
	FieldID     string   `json:"field_id"`
	FieldName   string   `json:"field_name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
}

// IsChoice reports whether the field restricts values to a fixed option list.
func (f FieldSchema) IsChoice() bool {
	return f.Type == TypeSelect || f.Type == TypeMultiSelect
}

// RiskKeywords holds trigger phrases grouped by severity tier.
type RiskKeywords struct {
	Critical []string `json:"critical"`
	High     []string `json:"high"`
	Medium   []string `json:"medium"`
}

// FormSchema is the full case-form definition: an ordered field list plus
// the risk keyword tiers. Built once at startup and read-only thereafter,
// so concurrent reads need no synchronization.
type FormSchema struct {
	Version      string        `json:"version,omitempty"`
	Fields       []FieldSchema `json:"fields"`
	RiskKeywords RiskKeywords  `json:"risk_detection_keywords"`

	byID map[string]*FieldSchema
}

// NewFormSchema creates a FormSchema with an indexed field lookup.
func NewFormSchema(version string, fields []FieldSchema, keywords RiskKeywords) *FormSchema {
	s := &FormSchema{
		Version:      version,
		Fields:       fields,
		RiskKeywords: keywords,
		byID:         make(map[string]*FieldSchema, len(fields)),
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		s.byID[f.FieldID] = f
	}
	return s
}

// ByID returns the field schema for the given field ID, or nil if not found.
func (s *FormSchema) ByID(id string) *FieldSchema {
	return s.byID[id]
}

// FieldCount returns the number of fields in the schema.
func (s *FormSchema) FieldCount() int {
	return len(s.Fields)
}
