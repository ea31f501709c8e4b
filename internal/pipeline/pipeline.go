// Package pipeline orchestrates a transcript extraction: fill request
// defaults, run the live or demo extractor, and normalize the raw output
// into the stable response contract.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openchs/intake/internal/extractor"
	"github.com/openchs/intake/internal/model"
)

// ErrPipeline classifies unexpected failures during normalization. They
// surface to the caller as request failures, never as partial responses.
var ErrPipeline = eris.New("pipeline: extraction failed")

// Mode reports which extraction path the pipeline runs against.
type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)

// defaultLanguage is assumed when a request does not state one.
const defaultLanguage = "English"

// Pipeline runs extractions over an immutable schema snapshot. Safe for
// concurrent use: requests share no mutable state.
type Pipeline struct {
	schema *model.FormSchema
	demo   *extractor.Demo
	live   *extractor.Live // nil when no live service is configured
}

// New creates a pipeline. Pass a nil live extractor to run in demo mode.
func New(schema *model.FormSchema, demo *extractor.Demo, live *extractor.Live) *Pipeline {
	return &Pipeline{schema: schema, demo: demo, live: live}
}

// Mode returns the configured extraction mode.
func (p *Pipeline) Mode() Mode {
	if p.live != nil {
		return ModeLive
	}
	return ModeDemo
}

// Run extracts structured case fields from the request transcript and
// returns the normalized response.
func (p *Pipeline) Run(ctx context.Context, req model.ExtractionRequest) (*model.NormalizedResponse, error) {
	start := time.Now()

	callID := req.CallID
	if callID == "" {
		callID = NewCallID(start)
	}
	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	var result extractor.Result
	if p.live != nil {
		result = p.live.Extract(ctx, req.Transcript)
	} else {
		result = extractor.Result{
			Raw:    p.demo.Extract(req.Transcript),
			Source: extractor.SourceDemo,
		}
	}

	resp, err := Normalize(result.Raw, callID, time.Since(start))
	if err != nil {
		return nil, err
	}

	zap.L().Info("pipeline: extraction complete",
		zap.String("call_id", callID),
		zap.String("language", language),
		zap.String("source", string(result.Source)),
		zap.Int("fields_extracted", result.Raw.Summary.FieldsExtracted),
		zap.Int("risk_flags", len(resp.RiskFlags)),
		zap.Int64("processing_time_ms", resp.ProcessingTimeMS),
	)

	return resp, nil
}

// Normalize projects a raw extraction into the stable response shape:
// one pass over extracted_fields into the three parallel field_id-keyed
// mappings, risk flags copied through unchanged.
func Normalize(raw *model.RawExtraction, callID string, elapsed time.Duration) (*model.NormalizedResponse, error) {
	if raw == nil || raw.ExtractedFields == nil {
		return nil, eris.Wrap(ErrPipeline, "raw extraction has no fields")
	}

	resp := &model.NormalizedResponse{
		CallID:           callID,
		ExtractedData:    make(map[string]any, len(raw.ExtractedFields)),
		Evidence:         make(map[string]model.Evidence, len(raw.ExtractedFields)),
		ConfidenceScores: make(map[string]float64, len(raw.ExtractedFields)),
		RiskFlags:        raw.RiskFlags,
		ProcessingTimeMS: elapsed.Milliseconds(),
	}
	if resp.RiskFlags == nil {
		resp.RiskFlags = []model.RiskFlag{}
	}

	for fieldID, fe := range raw.ExtractedFields {
		resp.ExtractedData[fieldID] = fe.Value
		resp.Evidence[fieldID] = model.Evidence{
			Quote:      fe.EvidenceQuote,
			Confidence: fe.Confidence,
			Reasoning:  fe.Reasoning,
		}
		resp.ConfidenceScores[fieldID] = fe.Confidence
	}

	return resp, nil
}

// NewCallID derives a call ID from the request time, with a random suffix
// so concurrent requests within the same second stay distinct.
func NewCallID(t time.Time) string {
	return fmt.Sprintf("CALL_%s_%s", t.Format("20060102_150405"), uuid.NewString()[:8])
}
