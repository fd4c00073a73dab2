package relbump

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is looked up in the working directory when no config path is given.
const ConfigFileName = "relbump.toml"

type fileConfig struct {
	Artifact string       `toml:"artifact"`
	Strict   bool         `toml:"strict"`
	Targets  []fileTarget `toml:"target"`
}

type fileTarget struct {
	Path  string   `toml:"path"`
	Rules []string `toml:"rules"`
}

// LoadConfig reads a TOML config file and overlays it on DefaultConfig.
// A [[target]] list replaces the default targets entirely.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("load config: unknown keys %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("artifact") {
		artifact := strings.TrimSpace(raw.Artifact)
		if artifact == "" {
			return Config{}, errors.New("load config: artifact must not be empty")
		}
		cfg.Artifact = artifact
	}

	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}

	if meta.IsDefined("target") {
		targets, err := normalizeTargets(raw.Targets)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg.Targets = targets
	}

	return cfg, nil
}

func normalizeTargets(in []fileTarget) ([]Target, error) {
	if len(in) == 0 {
		return nil, errors.New("at least one target is required")
	}
	out := make([]Target, 0, len(in))
	for i, t := range in {
		path := strings.TrimSpace(t.Path)
		if path == "" {
			return nil, fmt.Errorf("target %d: path must not be empty", i+1)
		}
		if len(t.Rules) == 0 {
			return nil, fmt.Errorf("target %s: no rules listed", path)
		}
		rules := make([]string, 0, len(t.Rules))
		for _, r := range t.Rules {
			r = strings.TrimSpace(r)
			if r != RuleDependency && r != RuleJar {
				return nil, fmt.Errorf("target %s: %w: %q", path, ErrUnknownRule, r)
			}
			rules = append(rules, r)
		}
		out = append(out, Target{Path: path, Rules: rules})
	}
	return out, nil
}
