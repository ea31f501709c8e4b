package main

import (
	"go.uber.org/zap"

	"github.com/openchs/intake/internal/config"
	"github.com/openchs/intake/internal/extractor"
	"github.com/openchs/intake/internal/model"
	"github.com/openchs/intake/internal/pipeline"
	"github.com/openchs/intake/internal/samples"
	"github.com/openchs/intake/internal/schema"
	"github.com/openchs/intake/pkg/anthropic"
)

// env holds the loaded static data and assembled pipeline shared by the
// serve and extract commands.
type env struct {
	Schema   *model.FormSchema
	Library  *samples.Library
	Pipeline *pipeline.Pipeline
}

// initEnv loads the schema and reference library (startup-fatal on
// failure) and assembles the pipeline in live or demo mode.
func initEnv(cfg *config.Config) (*env, error) {
	sch, err := schema.Load(cfg.Data.SchemaPath)
	if err != nil {
		return nil, err
	}

	lib, err := samples.Load(cfg.Data.SamplesPath)
	if err != nil {
		return nil, err
	}

	demo := extractor.NewDemo(sch, lib)

	var live *extractor.Live
	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		live = extractor.NewLive(client, demo, sch, cfg.Anthropic)
		zap.L().Info("live extraction enabled",
			zap.String("model", cfg.Anthropic.Model),
		)
	} else {
		zap.L().Warn("no anthropic key configured, running demo extraction only")
	}

	return &env{
		Schema:   sch,
		Library:  lib,
		Pipeline: pipeline.New(sch, demo, live),
	}, nil
}
