// Package normalizer turns raw text into a canonical token stream.
//
// Normalisation is deterministic and pure: lower-casing, punctuation and
// markup stripping, stopword removal. An empty token stream is a valid
// result, not an error - downstream components handle it.
package normalizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/verilabs/veritext/internal/core/domain"
)

// tokenPattern matches runs of letters, allowing internal apostrophes
// ("don't", "rock'n'roll"). Everything else is treated as separator.
var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Normalizer produces NormalizedDocuments from raw text.
type Normalizer struct {
	stopwords map[string]struct{}
}

// New creates a normaliser with the default English stopword set.
func New() *Normalizer {
	return &Normalizer{stopwords: defaultStopwords()}
}

// Normalize converts raw text into an ordered, stopword-filtered token
// stream. Returns domain.ErrInvalidInput for non-text (invalid UTF-8)
// input. An empty result is valid.
func (n *Normalizer) Normalize(raw string) (domain.NormalizedDocument, error) {
	if !utf8.ValidString(raw) {
		return domain.NormalizedDocument{}, domain.ErrInvalidInput
	}

	lower := strings.ToLower(raw)
	matches := tokenPattern.FindAllString(lower, -1)

	tokens := make([]string, 0, len(matches))
	for _, tok := range matches {
		if _, isStop := n.stopwords[tok]; isStop {
			continue
		}
		tokens = append(tokens, tok)
	}

	return domain.NormalizedDocument{Tokens: tokens}, nil
}

// defaultStopwords returns the fixed English stopword set.
func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else",
		"for", "to", "of", "in", "on", "at", "by", "with", "as", "is",
		"are", "was", "were", "be", "been", "being", "it", "its",
		"this", "that", "these", "those", "from", "up", "down", "over",
		"under", "again", "further", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very",
		"can", "will", "just", "not", "no", "nor", "only", "other",
		"some", "any", "all", "both", "each", "few", "more", "most",
		"he", "she", "they", "them", "his", "her", "their", "we", "us",
		"our", "you", "your", "i", "me", "my", "has", "have", "had",
		"do", "does", "did", "would", "could", "should", "there",
		"here", "what", "which", "who", "whom", "when", "where", "why",
		"how", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
