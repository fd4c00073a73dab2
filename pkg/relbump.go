package relbump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/moby/sys/atomicwriter"
	"github.com/rs/zerolog"
	"golang.org/x/mod/semver"
)

// DefaultArtifact is the artifact whose version is rewritten when no other is configured.
const DefaultArtifact = "coroutines-core"

// ErrInvalidVersion is returned when the version argument does not look like N.N.N.
var ErrInvalidVersion = errors.New("version must be in the format N.N.N")

var (
	versionPrefix = regexp.MustCompile(`^\d+\.\d+\.\d+`)
	versionExact  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// Target is a file rewritten in place, with the rule kinds applied to it in order.
type Target struct {
	Path  string
	Rules []string
}

// Config controls which files are rewritten and where output goes.
type Config struct {
	Artifact string   // Artifact whose version is rewritten.
	Targets  []Target // Processed in order.
	Strict   bool     // Require exactly N.N.N without leading zeros.
	Dir      string   // Relative target paths are resolved against Dir when set.

	Out    io.Writer // Receives the rewritten text of every target.
	Logger zerolog.Logger
}

// VersionMeta holds metadata about a version rewrite.
type VersionMeta struct {
	OldVersion     string   // First artifact version found in the targets before rewriting.
	NewVersion     string   // The version written.
	UpdatedFiles   []string // Targets whose content changed (or would change on a dry run).
	UnchangedFiles []string // Targets that already carried NewVersion.
}

// DefaultTargets returns the documentation file and the build descriptor.
func DefaultTargets() []Target {
	return []Target{
		{Path: "readme.md", Rules: []string{RuleDependency, RuleJar}},
		{Path: "coroutines-core/pom.xml", Rules: []string{RuleDependency}},
	}
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Artifact: DefaultArtifact,
		Targets:  DefaultTargets(),
		Out:      os.Stdout,
		Logger:   zerolog.Nop(),
	}
}

// ValidateVersion checks that version starts with N.N.N. Anything after the
// third number is accepted unless strict is set, in which case the whole
// string must be N.N.N and a valid semantic version.
func ValidateVersion(version string, strict bool) error {
	if !versionPrefix.MatchString(version) {
		return fmt.Errorf("%w: got %q", ErrInvalidVersion, version)
	}
	if strict && (!versionExact.MatchString(version) || !semver.IsValid("v"+version)) {
		return fmt.Errorf("%w (strict): got %q", ErrInvalidVersion, version)
	}
	return nil
}

func (c Config) resolve(path string) string {
	if c.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Run validates version and rewrites every target in order. Each target is
// written to a temporary file next to it and renamed over the original, so a
// failure never leaves a partially written file. Targets already rewritten
// before a failure stay rewritten.
//
// Run is not safe to call concurrently on the same files.
func Run(cfg Config, version string) (VersionMeta, error) {
	return run(cfg, version, false)
}

// DryRun behaves like Run, echoing the rewritten text, but writes nothing.
func DryRun(cfg Config, version string) (VersionMeta, error) {
	return run(cfg, version, true)
}

func run(cfg Config, version string, dry bool) (VersionMeta, error) {
	meta := VersionMeta{NewVersion: version}

	if err := ValidateVersion(version, cfg.Strict); err != nil {
		return meta, err
	}
	if len(cfg.Targets) == 0 {
		return meta, errors.New("no targets configured")
	}
	if cfg.Artifact == "" {
		cfg.Artifact = DefaultArtifact
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	for _, t := range cfg.Targets {
		log := cfg.Logger.With().Str("file", t.Path).Logger()

		rules, err := BuildRules(t.Rules, cfg.Artifact, version)
		if err != nil {
			return meta, fmt.Errorf("target %s: %w", t.Path, err)
		}

		path := cfg.resolve(t.Path)
		info, err := os.Stat(path)
		if err != nil {
			return meta, fmt.Errorf("reading %s: %w", t.Path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return meta, fmt.Errorf("reading %s: %w", t.Path, err)
		}
		before := string(data)

		for _, found := range FindVersions(before, cfg.Artifact) {
			if meta.OldVersion == "" {
				meta.OldVersion = found.Version
			}
			if isDowngrade(found.Version, version) {
				log.Warn().Int("line", found.Line).Str("current", found.Version).Str("new", version).Msg("new version is lower than current version")
			}
		}

		after := before
		for _, r := range rules {
			var n int
			after, n = r.Apply(after)
			if n == 0 {
				log.Warn().Str("rule", r.Name).Msg("rule matched nothing")
				continue
			}
			log.Debug().Str("rule", r.Name).Int("matches", n).Msg("applied rule")
		}

		fmt.Fprintln(out, after)

		if after == before {
			meta.UnchangedFiles = append(meta.UnchangedFiles, t.Path)
		} else {
			meta.UpdatedFiles = append(meta.UpdatedFiles, t.Path)
		}
		if dry {
			continue
		}

		if err := atomicwriter.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
			return meta, fmt.Errorf("writing %s: %w", t.Path, err)
		}
		log.Info().Msg("rewrote file")
	}

	return meta, nil
}

// isDowngrade reports whether next is a lower semantic version than current.
// Versions that are not valid semver are never compared.
func isDowngrade(current, next string) bool {
	cur, nxt := "v"+current, "v"+next
	if !semver.IsValid(cur) || !semver.IsValid(nxt) {
		return false
	}
	return semver.Compare(nxt, cur) < 0
}
