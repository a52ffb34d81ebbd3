package matching

import "strconv"

// MatchReport is the user-facing result of comparing a resume with a job
// description. Matched and Missing partition the job vocabulary.
type MatchReport struct {
	Matched   []string `json:"matched"`
	Missing   []string `json:"missing"`
	MatchRate string   `json:"matchRate"`
}

// BuildReport scores the two texts and measures the matched skills against
// the job text's own unigram vocabulary.
func (e *Engine) BuildReport(resumeText, jobText string) MatchReport {
	return e.report(e.Score(resumeText, jobText), jobText)
}

func (e *Engine) report(scoring Scoring, jobText string) MatchReport {
	vocab := e.JobVocabulary(jobText)

	// Every signal is a job unigram already; the vocabulary check only bites
	// when stop terms were dropped from it.
	matched := make([]string, 0, len(scoring.Signals))
	matchedSet := make(map[string]struct{}, len(scoring.Signals))
	for _, s := range scoring.Signals {
		if !vocab.Has(s.Skill) {
			continue
		}
		matched = append(matched, s.Skill)
		matchedSet[s.Skill] = struct{}{}
	}

	missing := make([]string, 0, vocab.Len())
	for _, t := range vocab.Sorted() {
		if _, ok := matchedSet[t]; !ok {
			missing = append(missing, t)
		}
	}

	return MatchReport{
		Matched:   matched,
		Missing:   missing,
		MatchRate: matchRate(len(matched), vocab.Len()),
	}
}

// JobVocabulary is the deduplicated unigram set of the normalized job text.
func (e *Engine) JobVocabulary(jobText string) TokenSet {
	vocab := Tokenize(Normalize(jobText), 1)
	if e.weights.VocabularyExcludesStopTerms {
		for t := range vocab {
			if IsStopTerm(t) {
				delete(vocab, t)
			}
		}
	}
	return vocab
}

// matchRate formats matched/total as a whole percentage, rounding halves up.
func matchRate(matched, total int) string {
	if total <= 0 {
		return "0%"
	}
	pct := (200*matched + total) / (2 * total)
	return strconv.Itoa(pct) + "%"
}
