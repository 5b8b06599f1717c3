// Package summarizer produces the corpus summary shown after ingest.
package summarizer

import (
	"math"
	"sort"
	"strings"

	"chunkrank/internal/textutil"
)

// FrequencySummarizer ranks sentences by normalized word frequency
// (stopwords filtered) and returns the best ones in original order.
type FrequencySummarizer struct{}

func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{}
}

func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range textutil.Tokenize(sent) {
			if textutil.IsStopword(tok) {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		tokens := textutil.Tokenize(sent)
		score := 0.0
		for _, tok := range tokens {
			score += freq[tok]
		}
		// normalize by length so long sentences don't dominate
		if l := float64(len(tokens)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}

	// keep original order among the selected sentences
	selected := make([]int, maxSentences)
	for i := range selected {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " "), nil
}
