// Package tfidf is a local TF-IDF vectorizer: it builds a vocabulary from
// the corpus during Prepare and embeds texts as L2-normalized TF-IDF
// vectors over that vocabulary.
package tfidf

import (
	"errors"
	"math"
	"sort"

	"chunkrank/internal/textutil"
)

type Embedder struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
}

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder() *Embedder {
	return &Embedder{vocabulary: make(map[string]int)}
}

func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and smoothed IDF values from the corpus.
// The vocabulary order is sorted, so the embedding space is deterministic
// for a fixed corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range textutil.Tokenize(text) {
			if textutil.IsStopword(tok) {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus; ensure tokenizer supports your language")
	}
	sort.Strings(terms)
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

func (e *Embedder) Dimension() int { return e.dimension }

// Embed computes the TF-IDF embedding for the given text. Out-of-vocabulary
// text embeds to the zero vector; callers treat that as "no signal".
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range textutil.Tokenize(text) {
		if textutil.IsStopword(tok) {
			continue
		}
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
