// Package textutil holds the text primitives shared by the chunker,
// summarizer and TUI: sentence splitting, unicode word tokenization and
// a small English stopword list.
package textutil

import (
	"regexp"
	"strings"
)

var (
	terminalRe = regexp.MustCompile(`[.!?]+`)
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
	wordRe     = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// SplitSentences splits text on terminal punctuation (. ! ?) into trimmed
// sentence-like units with their terminators stripped. Empty fragments are
// dropped; a trailing fragment without a terminator is kept.
func SplitSentences(text string) []string {
	parts := terminalRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Sentences returns the trimmed sentence units of text with their original
// terminators preserved. Text after the last terminator is dropped; if
// nothing matches at all, the whole trimmed text is a single unit.
func Sentences(text string) []string {
	raw := sentenceRe.FindAllString(text, -1)
	if len(raw) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}
	out := raw[:0]
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Tokenize lowercases text and returns its unicode word tokens.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// IsStopword reports whether tok is a common English stopword.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
