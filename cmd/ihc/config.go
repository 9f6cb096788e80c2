package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rgonek/inline-html-converter/converter"
)

const (
	presetBalanced   = "balanced"
	presetStrict     = "strict"
	presetCommonMark = "commonmark"
)

// maxConfigSize bounds config files read from disk.
const maxConfigSize = 1 << 20

func presetConfig(preset string) (converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return converter.Config{}, nil
	case presetStrict:
		return converter.Config{
			MalformedMarkup: converter.MarkupError,
			ResolutionMode:  converter.ResolutionStrict,
		}, nil
	case presetCommonMark:
		return converter.Config{
			Engine: converter.EngineGoldmark,
		}, nil
	default:
		return converter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, commonmark)", preset)
	}
}

func loadConfigFile(path string) (converter.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return converter.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (converter.Config, error) {
	var cfg converter.Config
	if len(data) > maxConfigSize {
		return cfg, fmt.Errorf("config exceeds %d bytes", maxConfigSize)
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return converter.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// overlayConfig copies every field set in override onto base.
func overlayConfig(base, override converter.Config) converter.Config {
	if override.Engine != "" {
		base.Engine = override.Engine
	}
	if override.Delimiters != nil {
		base.Delimiters = override.Delimiters
	}
	if override.MalformedMarkup != "" {
		base.MalformedMarkup = override.MalformedMarkup
	}
	if override.WrapTag != "" {
		base.WrapTag = override.WrapTag
	}
	if override.WrapAttrs != nil {
		base.WrapAttrs = override.WrapAttrs
	}
	if override.ResolutionMode != "" {
		base.ResolutionMode = override.ResolutionMode
	}
	return base
}

func resolveConfig(opts options) (converter.Config, error) {
	cfg, err := presetConfig(opts.preset)
	if err != nil {
		return converter.Config{}, err
	}

	if opts.configPath != "" {
		fileCfg, err := loadConfigFile(opts.configPath)
		if err != nil {
			return converter.Config{}, err
		}
		cfg = overlayConfig(cfg, fileCfg)
	}

	if opts.engine != "" {
		cfg.Engine = converter.Engine(opts.engine)
	}
	if opts.wrap != "" {
		cfg.WrapTag = opts.wrap
	}
	if opts.strict {
		cfg.MalformedMarkup = converter.MarkupError
		cfg.ResolutionMode = converter.ResolutionStrict
	}

	return cfg, nil
}
