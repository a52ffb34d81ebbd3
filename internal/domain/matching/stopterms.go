package matching

import "sort"

// stopTerms are generic words that show up in nearly every resume and job
// posting and carry no skill signal. Read-only after package init.
var stopTerms = newTermSet(
	// articles, conjunctions, prepositions
	"a", "an", "the", "and", "or", "but", "nor", "of", "in", "on", "at", "to",
	"for", "with", "by", "from", "as", "into", "about", "across", "within",
	"per", "via", "etc",

	// pronouns and determiners
	"we", "you", "our", "your", "their", "they", "it", "its", "this", "that",
	"these", "those", "who", "what", "which", "all", "any", "some", "other",

	// auxiliary and modal verbs
	"is", "are", "was", "were", "be", "been", "being", "am", "have", "has",
	"had", "do", "does", "did", "will", "would", "can", "could", "should",
	"shall", "may", "might", "must",

	// generic role and process vocabulary
	"responsibilities", "responsibility", "requirements", "required",
	"preferred", "qualifications", "qualification", "skills", "skill",
	"experience", "experienced", "looking", "seeking", "team", "teams",
	"work", "working", "role", "position", "candidate", "candidates",
	"ability", "strong", "excellent", "knowledge", "understanding",
	"years", "year", "plus", "job", "company", "opportunity", "including",
	"join", "help", "using", "use", "new", "good", "great", "well",
)

func newTermSet(terms ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		out[t] = struct{}{}
	}
	return out
}

// IsStopTerm reports whether token is generic filler rather than a skill.
func IsStopTerm(token string) bool {
	_, ok := stopTerms[token]
	return ok
}

// StopTerms returns a sorted copy of the stop-term list.
func StopTerms() []string {
	out := make([]string, 0, len(stopTerms))
	for t := range stopTerms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
