// Package keyword turns free text into search tokens and scores token-set overlap.
package keyword

import (
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	"github.com/blevesearch/bleve/v2/analysis/token/unique"
	bleveregexp "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
)

// StopWords are dropped from query text before matching.
var StopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
	"to", "was", "will", "with", "i", "you", "we", "they", "this", "these",
	"those", "or", "but", "if", "when", "where", "why", "how", "all", "any",
	"both", "each", "few", "more", "most", "other", "some", "such", "no", "nor",
	"not", "only", "own", "same", "so", "than", "too", "very", "can", "could",
	"should", "would", "may", "might", "must", "shall",
}

// wordPattern matches runs of ASCII word characters; everything else separates tokens.
var wordPattern = regexp.MustCompile(`\w+`)

// Tokenizer splits text into lowercase, stop-word-free, deduplicated tokens.
// It is safe for concurrent use.
type Tokenizer struct {
	tokenizer analysis.Tokenizer
	filters   []analysis.TokenFilter
}

// NewTokenizer builds a tokenizer with the default stop words.
func NewTokenizer() *Tokenizer {
	return NewTokenizerWithStopWords(StopWords)
}

// NewTokenizerWithStopWords builds a tokenizer that drops the given words.
func NewTokenizerWithStopWords(words []string) *Tokenizer {
	stopMap := analysis.NewTokenMap()
	for _, w := range words {
		stopMap.AddToken(strings.ToLower(w))
	}
	return &Tokenizer{
		tokenizer: bleveregexp.NewRegexpTokenizer(wordPattern),
		filters: []analysis.TokenFilter{
			stop.NewStopTokensFilter(stopMap),
			unique.NewUniqueTermFilter(),
		},
	}
}

// Tokenize returns the tokens of text in first-occurrence order.
func (t *Tokenizer) Tokenize(text string) []string {
	stream := t.tokenizer.Tokenize([]byte(strings.ToLower(text)))
	for _, f := range t.filters {
		stream = f.Filter(stream)
	}
	tokens := make([]string, 0, len(stream))
	for _, tok := range stream {
		if len(tok.Term) == 0 {
			continue
		}
		tokens = append(tokens, string(tok.Term))
	}
	return tokens
}

// TokenSet returns the tokens of text as a set.
func (t *Tokenizer) TokenSet(text string) map[string]struct{} {
	return NewSet(t.Tokenize(text))
}

// NewSet builds a set from words, lower-casing each one.
func NewSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
