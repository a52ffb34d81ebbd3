package matching

import (
	"errors"
	"fmt"
)

var ErrInvalidWeights = errors.New("invalid scoring weights")

// Weights holds the tunable constants of the scoring heuristic.
type Weights struct {
	BaseMatch       int `json:"base_match" koanf:"base_match"`
	Reinforcement   int `json:"reinforcement" koanf:"reinforcement"`
	StopTermPenalty int `json:"stop_term_penalty" koanf:"stop_term_penalty"`
	MinScore        int `json:"min_score" koanf:"min_score"`

	ResumePhraseSizes []int `json:"resume_phrase_sizes" koanf:"resume_phrase_sizes"`
	// JobPhraseSizes selects the job-side set resume phrases are checked
	// against. The default {1} compares phrases with job unigrams.
	JobPhraseSizes []int `json:"job_phrase_sizes" koanf:"job_phrase_sizes"`

	// VocabularyExcludesStopTerms drops stop terms from the job vocabulary
	// used for the missing list and the match rate.
	VocabularyExcludesStopTerms bool `json:"vocabulary_excludes_stop_terms" koanf:"vocabulary_excludes_stop_terms"`
}

func DefaultWeights() Weights {
	return Weights{
		BaseMatch:         2,
		Reinforcement:     1,
		StopTermPenalty:   3,
		MinScore:          2,
		ResumePhraseSizes: []int{2, 3},
		JobPhraseSizes:    []int{1},
	}
}

func (w Weights) Validate() error {
	if w.BaseMatch <= 0 {
		return fmt.Errorf("%w: base_match must be positive", ErrInvalidWeights)
	}
	if w.Reinforcement < 0 {
		return fmt.Errorf("%w: reinforcement must not be negative", ErrInvalidWeights)
	}
	if w.StopTermPenalty < 0 {
		return fmt.Errorf("%w: stop_term_penalty must not be negative", ErrInvalidWeights)
	}
	for _, n := range w.ResumePhraseSizes {
		if n <= 0 {
			return fmt.Errorf("%w: resume_phrase_sizes must be positive", ErrInvalidWeights)
		}
	}
	for _, n := range w.JobPhraseSizes {
		if n <= 0 {
			return fmt.Errorf("%w: job_phrase_sizes must be positive", ErrInvalidWeights)
		}
	}
	return nil
}
