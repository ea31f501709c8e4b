// Package schema loads the static case-form definition. The definition is
// read exactly once at process start; every other component receives the
// resulting FormSchema as an injected read-only value.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/openchs/intake/internal/model"
)

// ErrSchemaLoad classifies any failure to produce a valid form schema.
// It is startup-fatal: the service must not accept traffic without one.
var ErrSchemaLoad = eris.New("schema: invalid form definition")

// schemaFile is the on-disk shape of the form schema definition.
type schemaFile struct {
	Version               string              `json:"version"`
	Fields                []model.FieldSchema `json:"fields"`
	RiskDetectionKeywords model.RiskKeywords  `json:"risk_detection_keywords"`
}

// Load reads and validates the form schema definition at path.
func Load(path string) (*model.FormSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrSchemaLoad, "read %s: %s", path, err)
	}

	var file schemaFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(ErrSchemaLoad, "unmarshal %s: %s", path, err)
	}

	if err := validate(file); err != nil {
		return nil, err
	}

	return model.NewFormSchema(file.Version, file.Fields, file.RiskDetectionKeywords), nil
}

func validate(file schemaFile) error {
	if len(file.Fields) == 0 {
		return eris.Wrap(ErrSchemaLoad, "no fields defined")
	}

	seen := make(map[string]bool, len(file.Fields))
	for i, f := range file.Fields {
		if f.FieldID == "" {
			return eris.Wrapf(ErrSchemaLoad, "field %d: missing field_id", i)
		}
		if f.FieldName == "" {
			return eris.Wrapf(ErrSchemaLoad, "field %s: missing field_name", f.FieldID)
		}
		if f.Type == "" {
			return eris.Wrapf(ErrSchemaLoad, "field %s: missing type", f.FieldID)
		}
		if seen[f.FieldID] {
			return eris.Wrap(ErrSchemaLoad, fmt.Sprintf("duplicate field_id %s", f.FieldID))
		}
		seen[f.FieldID] = true
		if f.IsChoice() && len(f.Options) == 0 {
			return eris.Wrapf(ErrSchemaLoad, "field %s: %s type requires options", f.FieldID, f.Type)
		}
	}

	return nil
}
