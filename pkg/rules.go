package relbump

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Rule kinds accepted in a target's rule list.
const (
	// RuleDependency rewrites the <version> tag that follows the artifact's
	// <artifactId> tag in a Maven dependency block.
	RuleDependency = "dependency"
	// RuleJar rewrites packaged artifact filenames such as coroutines-core-1.2.3.jar.
	RuleJar = "jar"
)

// ErrUnknownRule is returned when a target names a rule kind that does not exist.
var ErrUnknownRule = errors.New("unknown rule")

// Rule is a pattern and replacement template applied to the whole text of a file.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// VersionMatch is a version found in a file's text.
type VersionMatch struct {
	Line    int
	Offset  int
	Version string
	Rule    string
}

// escapeTemplate makes s literal inside a regexp replacement template.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func artifactTag(artifact string) string {
	return "<artifactId>" + artifact + "</artifactId>"
}

// DependencyRule returns the rule that replaces the version tag following
// <artifactId>artifact</artifactId>. Whatever sits between the two tags is kept.
func DependencyRule(artifact, version string) Rule {
	tag := artifactTag(artifact)
	return Rule{
		Name:        RuleDependency,
		Pattern:     regexp.MustCompile(`(?sm)` + regexp.QuoteMeta(tag) + `([^<]*)<version>[^<]+</version>`),
		Replacement: escapeTemplate(tag) + "${1}<version>" + escapeTemplate(version) + "</version>",
	}
}

// JarRule returns the rule that replaces artifact-N.N.N.jar filenames.
func JarRule(artifact, version string) Rule {
	return Rule{
		Name:        RuleJar,
		Pattern:     regexp.MustCompile(`(?sm)` + regexp.QuoteMeta(artifact+"-") + `[0-9.]+\.jar`),
		Replacement: escapeTemplate(artifact + "-" + version + ".jar"),
	}
}

// BuildRules turns a list of rule kinds into rules for artifact and version,
// keeping the order of kinds.
func BuildRules(kinds []string, artifact, version string) ([]Rule, error) {
	rules := make([]Rule, 0, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case RuleDependency:
			rules = append(rules, DependencyRule(artifact, version))
		case RuleJar:
			rules = append(rules, JarRule(artifact, version))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, kind)
		}
	}
	return rules, nil
}

// Apply replaces every match of the rule in text and reports how many matches there were.
func (r Rule) Apply(text string) (string, int) {
	n := len(r.Pattern.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, 0
	}
	return r.Pattern.ReplaceAllString(text, r.Replacement), n
}

// ApplyRules applies rules in order, each one to the output of the previous.
func ApplyRules(text string, rules []Rule) string {
	for _, r := range rules {
		text, _ = r.Apply(text)
	}
	return text
}

// FindVersions reports the versions currently written for artifact in text,
// both in dependency version tags and in jar filenames, in order of appearance.
func FindVersions(text, artifact string) []VersionMatch {
	patterns := []struct {
		rule string
		re   *regexp.Regexp
	}{
		{RuleDependency, regexp.MustCompile(`(?s)` + regexp.QuoteMeta(artifactTag(artifact)) + `[^<]*<version>([^<]+)</version>`)},
		{RuleJar, regexp.MustCompile(regexp.QuoteMeta(artifact+"-") + `([0-9.]+)\.jar`)},
	}

	var matches []VersionMatch
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, VersionMatch{
				Line:    strings.Count(text[:m[2]], "\n") + 1,
				Offset:  m[2],
				Version: strings.TrimSpace(text[m[2]:m[3]]),
				Rule:    p.rule,
			})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Offset < matches[j].Offset })
	return matches
}
