package matching

import (
	"regexp"
	"strings"
)

type canonicalRule struct {
	re   *regexp.Regexp
	repl string
}

// Every pattern maps its own replacement onto itself and otherwise only
// shortens the text, so re-running the rules until nothing changes terminates.
var canonicalRules = []canonicalRule{
	{regexp.MustCompile(`\bnode\s*[.\-]?\s*js\b`), "nodejs"},
	{regexp.MustCompile(`\breact\s*[.\-]?\s*js\b`), "react"},
	{regexp.MustCompile(`\bvue\s*[.\-]?\s*js\b`), "vue"},
	{regexp.MustCompile(`\bangular\s*[.\-]?\s*js\b`), "angular"},
	{regexp.MustCompile(`\brest(?:ful)?\s+apis?\b`), "rest api"},
	{regexp.MustCompile(`\bci\s*(?:/|-|&)?\s*cd\b`), "cicd"},
	{regexp.MustCompile(`\bamazon\s+web\s+services\b`), "aws"},
	{regexp.MustCompile(`\bgoogle\s+cloud\s+platform\b`), "gcp"},
	{regexp.MustCompile(`\bmicrosoft\s+azure\b`), "azure"},
	{regexp.MustCompile(`\btailwind\s+css\b`), "tailwindcss"},
	{regexp.MustCompile(`\bhtml\s*5\b`), "html"},
	{regexp.MustCompile(`\bcss\s*3\b`), "css"},

	{regexp.MustCompile(`\bfront\s*-?\s*end\b`), "frontend"},
	{regexp.MustCompile(`\bback\s*-?\s*end\b`), "backend"},
	{regexp.MustCompile(`\bfull\s*-?\s*stack\b`), "fullstack"},
	{regexp.MustCompile(`\bproblem\s*-?\s*solving\b`), "problemsolving"},
	{regexp.MustCompile(`\bcross\s*-?\s*functional\b`), "crossfunctional"},
}

// whitespaceRun matches Unicode spaces too (NBSP, vertical tab, NEL), which
// \s alone does not.
var whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)

// Normalize lower-cases raw text, collapses known spelling variants of
// technology names and qualifier phrases into one canonical token and
// squeezes whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	out := strings.ToLower(raw)
	for {
		next := normalizePass(out)
		if next == out {
			return out
		}
		out = next
	}
}

func normalizePass(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	for _, r := range canonicalRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
