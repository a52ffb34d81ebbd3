package matching

import (
	"regexp"
	"sort"
	"strings"
)

// TokenSet is an unordered set of normalized words or word phrases.
type TokenSet map[string]struct{}

func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

func (s TokenSet) Len() int {
	return len(s)
}

// Sorted returns the members in alphabetical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

var nonWordChar = regexp.MustCompile(`[^\w\s\v\x{85}\p{Z}]`)

// Words strips punctuation from text and splits it on whitespace.
func Words(text string) []string {
	return strings.Fields(nonWordChar.ReplaceAllString(text, ""))
}

// Tokenize returns every run of n consecutive words for each n in sizes.
// Sizes that are not positive or exceed the word count add nothing.
func Tokenize(text string, sizes ...int) TokenSet {
	words := Words(text)
	out := make(TokenSet)
	for _, n := range sizes {
		if n <= 0 || n > len(words) {
			continue
		}
		for i := 0; i+n <= len(words); i++ {
			out[strings.Join(words[i:i+n], " ")] = struct{}{}
		}
	}
	return out
}
