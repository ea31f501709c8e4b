// Package samples loads and indexes the reference transcript library used
// by the demo extractor and the sample retrieval endpoints.
package samples

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/openchs/intake/internal/model"
)

// ErrDataLoad classifies any failure to load the reference library.
// Startup-fatal: the demo fallback cannot run without it.
var ErrDataLoad = eris.New("samples: reference library unavailable")

// ErrNotFound is returned when a sample lookup misses.
var ErrNotFound = eris.New("samples: sample not found")

// previewLen is the number of transcript characters in a listing preview.
const previewLen = 200

// Library is an indexed, immutable collection of reference samples.
// Order is significant: the demo extractor falls back to the first sample
// when no transcript prefix matches.
type Library struct {
	samples []model.ReferenceSample
	byID    map[string]*model.ReferenceSample
}

// NewLibrary creates a Library with indexed lookups.
func NewLibrary(samples []model.ReferenceSample) *Library {
	l := &Library{
		samples: samples,
		byID:    make(map[string]*model.ReferenceSample, len(samples)),
	}
	for i := range l.samples {
		s := &l.samples[i]
		l.byID[s.CallID] = s
	}
	return l
}

// Load reads the reference sample library at path.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrDataLoad, "read %s: %s", path, err)
	}

	var samples []model.ReferenceSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, eris.Wrapf(ErrDataLoad, "unmarshal %s: %s", path, err)
	}
	if len(samples) == 0 {
		return nil, eris.Wrap(ErrDataLoad, "library is empty")
	}
	for i, s := range samples {
		if s.CallID == "" {
			return nil, eris.Wrapf(ErrDataLoad, "sample %d: missing call_id", i)
		}
	}

	return NewLibrary(samples), nil
}

// All returns every sample in library order.
func (l *Library) All() []model.ReferenceSample {
	return l.samples
}

// ByCallID returns the sample with the given call ID, or ErrNotFound.
func (l *Library) ByCallID(id string) (*model.ReferenceSample, error) {
	s, ok := l.byID[id]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "call_id %s", id)
	}
	return s, nil
}

// Preview is a truncated sample listing entry.
type Preview struct {
	CallID          string `json:"call_id"`
	Language        string `json:"language"`
	DurationSeconds int    `json:"duration_seconds"`
	RiskLevel       string `json:"risk_level"`
	Preview         string `json:"preview"`
}

// Previews returns listing entries with truncated transcripts.
func (l *Library) Previews() []Preview {
	out := make([]Preview, 0, len(l.samples))
	for _, s := range l.samples {
		text := s.Transcript
		if len(text) > previewLen {
			text = text[:previewLen] + "..."
		}
		out = append(out, Preview{
			CallID:          s.CallID,
			Language:        s.Language,
			DurationSeconds: s.DurationSeconds,
			RiskLevel:       s.RiskLevelActual,
			Preview:         text,
		})
	}
	return out
}
