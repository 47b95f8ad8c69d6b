package risk

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var patternsYAML []byte

type patternFile struct {
	Patterns []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"patterns"`
}

type rule struct {
	name string
	re   *regexp.Regexp
}

var rules = mustLoadRules()

func mustLoadRules() []rule {
	var pf patternFile
	if err := yaml.Unmarshal(patternsYAML, &pf); err != nil {
		panic(fmt.Sprintf("risk: embedded pattern table is invalid: %v", err))
	}
	out := make([]rule, 0, len(pf.Patterns))
	for _, p := range pf.Patterns {
		out = append(out, rule{name: p.Name, re: regexp.MustCompile(`(?i)` + p.Pattern)})
	}
	return out
}

// IsDangerous reports whether command matches any destructive-intent pattern.
// Low precision, high recall: false positives only cost the user a hard block
// on a command they should be typing by hand anyway.
func IsDangerous(command string) bool {
	for _, r := range rules {
		if r.re.MatchString(command) {
			return true
		}
	}
	return false
}
