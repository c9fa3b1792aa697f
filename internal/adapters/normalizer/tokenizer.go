package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// StopWordTokenizer splits cleaned text on whitespace and drops stop
// words. It expects its input to already be normalized; it performs no
// case folding of its own.
type StopWordTokenizer struct {
	stop map[string]struct{}
}

// NewStopWordTokenizer creates a tokenizer with the standard plus
// domain stop-word set, extended by any extras.
func NewStopWordTokenizer(extras ...string) ports.Tokenizer {
	return &StopWordTokenizer{stop: StopWordSet(extras...)}
}

// Tokenize returns the non-stop-word tokens of text in order.
// An empty slice is a valid result and keeps the record's row alive.
func (t *StopWordTokenizer) Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := t.stop[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
