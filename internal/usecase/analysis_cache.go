package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/26nm/careerpath/internal/domain/matching"
)

type AnalysisCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

const AnalysisCachePrefix = "analysis:report:"

type analysisCacheKeyInput struct {
	Resume  string           `json:"resume"`
	Job     string           `json:"job"`
	Weights matching.Weights `json:"weights"`
}

// AnalysisCacheKey hashes the normalized texts, so inputs that differ only in
// case, spacing or synonym spelling share one entry. Weights are part of the
// key because they change the result.
func AnalysisCacheKey(resumeText, jobText string, w matching.Weights) string {
	in := analysisCacheKeyInput{
		Resume:  matching.Normalize(resumeText),
		Job:     matching.Normalize(jobText),
		Weights: w,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return AnalysisCachePrefix + hex.EncodeToString(sum[:])
}
