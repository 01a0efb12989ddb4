package loader

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-almanac/pkg/almanac"
)

type yamlDocument struct {
	Seeds  []int64     `yaml:"seeds"`
	Stages []yamlStage `yaml:"stages"`
}

type yamlStage struct {
	Name string `yaml:"name"`
	// each rule is [destination, source, length]
	Rules [][]int64 `yaml:"rules"`
}

// ParseYAML reads a document in the YAML format:
//
//	seeds: [79, 14, 55, 13]
//	stages:
//	  - name: seed-to-soil
//	    rules:
//	      - [50, 98, 2]
//	      - [52, 50, 48]
func ParseYAML(r io.Reader) (*Almanac, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "unable to decode almanac")
	}

	out := &Almanac{
		Seeds:  doc.Seeds,
		Stages: make([]StageDef, 0, len(doc.Stages)),
	}
	for _, stage := range doc.Stages {
		def := StageDef{
			Name:  stage.Name,
			Rules: make([]almanac.Rule, 0, len(stage.Rules)),
		}
		for idx, rule := range stage.Rules {
			if len(rule) != 3 {
				return nil, errors.Wrapf(ErrMalformedRule, "stage %s rule %d has %d values", stage.Name, idx, len(rule))
			}
			def.Rules = append(def.Rules, almanac.NewRule(rule[0], rule[1], rule[2]))
		}
		out.Stages = append(out.Stages, def)
	}

	return out, nil
}
