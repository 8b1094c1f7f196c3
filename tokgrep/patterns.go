package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// patternFile is the format of --patterns:
//
//	patterns:
//	  np: "<tag=DT>? <tag=/JJ.*/>* <tag=/NN.*/>+"
type patternFile struct {
	Patterns map[string]string `yaml:"patterns"`
}

func loadPatterns(path string) (*patternFile, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read pattern file: %w", err)
	}
	return parsePatterns(rawData)
}

func parsePatterns(rawData []byte) (*patternFile, error) {
	var pf patternFile
	if err := yaml.Unmarshal(rawData, &pf); err != nil {
		return nil, fmt.Errorf("unable to parse pattern file: %w", err)
	}
	if len(pf.Patterns) == 0 {
		return nil, fmt.Errorf("pattern file has no patterns")
	}
	return &pf, nil
}

func (pf *patternFile) lookup(name string) (string, error) {
	if p, ok := pf.Patterns[name]; ok {
		return p, nil
	}

	names := make([]string, 0, len(pf.Patterns))
	for n := range pf.Patterns {
		names = append(names, n)
	}
	slices.Sort(names)
	return "", fmt.Errorf("no pattern named %q, have %s", name, strings.Join(names, ", "))
}
