// Package matching compares resume text with job-description text and
// reports which skills overlap.
//
// The pipeline is: Normalize both texts, Tokenize them into word and phrase
// sets, Score shared words (base match, phrase reinforcement, stop-term
// penalty, threshold) and finally BuildReport against the job vocabulary.
// Everything here is pure and safe for concurrent use.
package matching

// Engine runs the scoring pipeline with a fixed set of weights.
type Engine struct {
	weights Weights
}

// NewEngine returns an engine using w. Zero-valued phrase size lists fall
// back to the defaults.
func NewEngine(w Weights) *Engine {
	d := DefaultWeights()
	if w.ResumePhraseSizes == nil {
		w.ResumePhraseSizes = d.ResumePhraseSizes
	}
	if w.JobPhraseSizes == nil {
		w.JobPhraseSizes = d.JobPhraseSizes
	}
	w.ResumePhraseSizes = append([]int(nil), w.ResumePhraseSizes...)
	w.JobPhraseSizes = append([]int(nil), w.JobPhraseSizes...)
	return &Engine{weights: w}
}

func (e *Engine) Weights() Weights {
	w := e.weights
	w.ResumePhraseSizes = append([]int(nil), w.ResumePhraseSizes...)
	w.JobPhraseSizes = append([]int(nil), w.JobPhraseSizes...)
	return w
}

// Analysis is a report together with the scorer diagnostics it came from.
type Analysis struct {
	Report  MatchReport
	Scoring Scoring
}

// Analyze scores once and builds the report from the same scoring.
func (e *Engine) Analyze(resumeText, jobText string) Analysis {
	s := e.Score(resumeText, jobText)
	return Analysis{Report: e.report(s, jobText), Scoring: s}
}

var defaultEngine = NewEngine(DefaultWeights())

// Analyze compares resume qualifications with a job description using the
// default weights.
func Analyze(resumeQualifications, jobDescription string) MatchReport {
	return defaultEngine.BuildReport(resumeQualifications, jobDescription)
}
