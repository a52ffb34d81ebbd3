package config

import (
	"fmt"
	"strings"

	"github.com/26nm/careerpath/internal/domain/matching"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const scoringEnvPrefix = "SCORING_"

// LoadScoring builds matching weights by layering, low to high precedence:
//  1. matching.DefaultWeights()
//  2. the YAML file at path, when path is not empty
//  3. SCORING_* environment variables (SCORING_MIN_SCORE -> min_score)
func LoadScoring(path string) (matching.Weights, error) {
	k := koanf.New(".")

	if path = strings.TrimSpace(path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return matching.Weights{}, fmt.Errorf("load scoring file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(scoringEnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, scoringEnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return matching.Weights{}, fmt.Errorf("load scoring env: %w", err)
	}

	w := matching.DefaultWeights()
	if err := k.UnmarshalWithConf("", &w, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return matching.Weights{}, fmt.Errorf("decode scoring config: %w", err)
	}

	if err := w.Validate(); err != nil {
		return matching.Weights{}, err
	}
	return w, nil
}
