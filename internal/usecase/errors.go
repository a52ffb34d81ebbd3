package usecase

import "errors"

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	ErrApplicationNotFound = errors.New("application not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrAnalysisNotFound    = errors.New("analysis not found")

	ErrInvalidStatus        = errors.New("invalid application status")
	ErrInvalidInterviewKind = errors.New("invalid interview kind")
	ErrPostingUnavailable   = errors.New("job posting could not be fetched")
	ErrUnsupportedFile      = errors.New("unsupported file type")
	ErrEmptyFile            = errors.New("no text could be extracted from file")

	// ErrNothingToAnalyze is returned when the resume or the job side resolves
	// to blank text. The matching engine itself accepts empty input.
	ErrNothingToAnalyze = errors.New("nothing to analyze")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// pageBounds applies the default page size and rejects out-of-range values.
func pageBounds(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 || limit > maxListLimit {
		return 0, 0, ErrInvalidInput
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	return limit, offset, nil
}
