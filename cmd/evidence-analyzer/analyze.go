package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"evidencelens/app"
	"evidencelens/domain/core"
	"evidencelens/domain/evidence"
	"evidencelens/internal/config"
	"evidencelens/internal/errors"
	"evidencelens/internal/input"

	"gopkg.in/yaml.v3"
)

type analyzeRequest struct {
	Argument  string
	Filename  string
	RawConfig string
}

// runAnalyze resolves the evidence, analyzes it and writes exactly one JSON
// value to out. Only argument and configuration problems are returned as
// errors; analysis failures are part of the result.
func runAnalyze(out io.Writer, cfg *config.Config, resolver *input.Resolver, req analyzeRequest) error {
	runID := core.NewRunID()
	logger := cfg.Logger().With("run " + runID.Short())

	evidenceCfg, err := decodeEvidenceConfig(req.RawConfig)
	if err != nil {
		return err
	}

	src, err := resolver.Resolve(req.Argument, req.Filename)
	if err != nil {
		return err
	}
	if src.FromPath {
		logger.Info("read %s (%d bytes, sha256 %s)", src.Path, src.Size, core.NewHash([]byte(src.Content)).Short())
	} else {
		logger.Debug("inline content (%d bytes, sha256 %s)", src.Size, core.NewHash([]byte(src.Content)).Short())
	}

	result := app.NewDefaultEvidenceService(logger).Analyze(req.Filename, src.Content, evidenceCfg)
	if result.FailureCode != "" {
		logger.Warn("%s finished with %s", req.Filename, result.FailureCode)
	} else {
		logger.Info("%s: %s (%s, impact %d)", req.Filename, result.EvidenceType, result.DiagnosticValue, result.ConfidenceImpact)
	}

	enc := json.NewEncoder(out)
	if cfg.Output.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return errors.Wrap(err, "failed to encode result")
	}
	return nil
}

// decodeEvidenceConfig accepts YAML, which covers JSON objects too. Blank
// input is an empty configuration.
func decodeEvidenceConfig(raw string) (evidence.EvidenceConfig, error) {
	var cfg evidence.EvidenceConfig
	if strings.TrimSpace(raw) == "" {
		return cfg, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		return cfg, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("config is not valid YAML or JSON: %w", err))
	}
	cfg.EvidenceCategory = strings.TrimSpace(cfg.EvidenceCategory)
	return cfg, nil
}
