package matching

import (
	"sort"
	"strings"
)

// SkillSignal is a token shared by resume and job text whose score cleared
// the keep threshold.
type SkillSignal struct {
	Skill string `json:"skill"`
	Score int    `json:"score"`
}

// Scoring is the scorer output: the kept signals, best first, and the full
// score map before thresholding.
type Scoring struct {
	Signals []SkillSignal  `json:"signals"`
	Scores  map[string]int `json:"scores"`
}

// Score extracts the skill signals shared by resumeText and jobText.
func (e *Engine) Score(resumeText, jobText string) Scoring {
	w := e.weights

	resume := Normalize(resumeText)
	job := Normalize(jobText)

	resumeUnigrams := Tokenize(resume, 1)
	jobUnigrams := Tokenize(job, 1)
	resumePhrases := Tokenize(resume, w.ResumePhraseSizes...)
	jobComparison := Tokenize(job, w.JobPhraseSizes...)

	scores := make(map[string]int)
	for t := range resumeUnigrams {
		if jobUnigrams.Has(t) {
			scores[t] += w.BaseMatch
		}
	}

	for phrase := range resumePhrases {
		words := strings.Split(phrase, " ")
		if !covers(jobComparison, phrase, words) {
			continue
		}
		for _, word := range words {
			if scores[word] != 0 {
				scores[word] += w.Reinforcement
			}
		}
	}

	for t := range scores {
		if IsStopTerm(t) {
			scores[t] -= w.StopTermPenalty
		}
	}

	signals := make([]SkillSignal, 0, len(scores))
	for t, s := range scores {
		if s >= w.MinScore {
			signals = append(signals, SkillSignal{Skill: t, Score: s})
		}
	}
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Score != signals[j].Score {
			return signals[i].Score > signals[j].Score
		}
		return signals[i].Skill < signals[j].Skill
	})

	return Scoring{Signals: signals, Scores: scores}
}

// covers reports whether set contains the phrase itself or every one of its
// words.
func covers(set TokenSet, phrase string, words []string) bool {
	if set.Has(phrase) {
		return true
	}
	for _, w := range words {
		if !set.Has(w) {
			return false
		}
	}
	return true
}
