package analyzer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/jonreiter/govader"
)

var (
	sentiment     *govader.SentimentIntensityAnalyzer
	sentimentOnce sync.Once
)

// Warmup loads the sentiment lexicon. It is safe to call more than once;
// analyses call it implicitly, servers call it at startup so the first
// request does not pay for it.
func Warmup() {
	sentimentOnce.Do(func() {
		sentiment = govader.NewSentimentIntensityAnalyzer()
	})
}

// Polarity scores text in [-1, 1] as the mean compound score of its
// sentences, so repeating a passage does not move the score. Text without
// sentences scores 0.
func Polarity(text string) float64 {
	Warmup()
	sents := Sentences(text)
	if len(sents) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sents {
		sum += sentiment.PolarityScores(s).Compound
	}
	return sum / float64(len(sents))
}

// Sentences splits text into trimmed, non-empty sentences (UAX #29).
func Sentences(text string) []string {
	var out []string
	iter := sentences.FromString(text)
	for iter.Next() {
		s := strings.TrimSpace(iter.Value())
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Words splits text into word and punctuation tokens (UAX #29), dropping
// whitespace segments.
func Words(text string) []string {
	var out []string
	iter := words.FromString(text)
	for iter.Next() {
		w := iter.Value()
		if strings.TrimFunc(w, unicode.IsSpace) == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
