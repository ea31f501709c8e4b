package extractor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openchs/intake/internal/config"
	"github.com/openchs/intake/internal/model"
	"github.com/openchs/intake/internal/prompt"
	"github.com/openchs/intake/internal/resilience"
	"github.com/openchs/intake/pkg/anthropic"
)

// Source identifies which extraction path produced a result.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// Result is a raw extraction tagged with the path that produced it, so
// callers can distinguish a live answer from a fallback.
type Result struct {
	Raw    *model.RawExtraction
	Source Source
}

// Live invokes the Anthropic structured-generation service and falls open
// to the demo extractor on any failure: a counselor in a live call always
// gets a best-effort answer.
type Live struct {
	client  anthropic.Client
	demo    *Demo
	schema  *model.FormSchema
	cfg     config.AnthropicConfig
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewLive creates a live extractor with its demo fallback.
func NewLive(client anthropic.Client, demo *Demo, schema *model.FormSchema, cfg config.AnthropicConfig) *Live {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("anthropic", "extract")
	return &Live{
		client:  client,
		demo:    demo,
		schema:  schema,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		retry:   retry,
	}
}

// Extract runs the live path and falls back to the demo extractor on any
// failure (network error, timeout, non-JSON reply, contract violation).
func (l *Live) Extract(ctx context.Context, transcript string) Result {
	raw, err := l.attempt(ctx, transcript)
	if err != nil {
		zap.L().Warn("extractor: live attempt failed, falling back to demo",
			zap.Error(err),
		)
		return Result{Raw: l.demo.Extract(transcript), Source: SourceDemo}
	}
	return Result{Raw: raw, Source: SourceLive}
}

func (l *Live) attempt(ctx context.Context, transcript string) (*model.RawExtraction, error) {
	timeout := time.Duration(l.cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "extractor: rate limit wait")
	}

	req := anthropic.MessageRequest{
		Model:     l.cfg.Model,
		MaxTokens: int64(l.cfg.MaxTokens),
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt.Build(transcript, l.schema)},
		},
	}
	resp, err := resilience.Do(ctx, l.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return l.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return nil, eris.Wrap(err, "extractor: create message")
	}
	resp.Usage.LogCost(l.cfg.Model, "extract")

	text := cleanJSON(extractText(resp))

	var generic any
	if err := json.Unmarshal([]byte(text), &generic); err != nil {
		return nil, eris.Wrap(err, "extractor: parse reply")
	}
	if err := replySchema.Validate(generic); err != nil {
		return nil, eris.Wrap(err, "extractor: reply violates contract")
	}

	var raw model.RawExtraction
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, eris.Wrap(err, "extractor: decode reply")
	}

	return &raw, nil
}
