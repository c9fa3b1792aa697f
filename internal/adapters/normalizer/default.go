package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// DefaultNormalizer implements the complaint-narrative cleaning pipeline:
// masking runs are deleted, letters lowercased, digits and punctuation
// deleted, tab/newline deleted, and whitespace collapsed. The step order
// is fixed; masking runs are matched before lowercasing because they are
// defined as runs of uppercase X.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize cleans the input narrative. It is idempotent: the output
// contains no uppercase letters, digits, punctuation, control characters
// or repeated spaces, so a second pass changes nothing.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = stripMaskRuns(text)

	var sb strings.Builder
	sb.Grow(len(text))
	lastWasSpace := true // swallows leading whitespace
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n':
			// Deleted outright, not treated as a separator.
		case unicode.IsDigit(r):
			// Deleted.
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// Deleted, not replaced: "don't" becomes "dont".
		case unicode.IsSpace(r):
			if !lastWasSpace {
				sb.WriteRune(' ')
				lastWasSpace = true
			}
		default:
			sb.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		}
	}

	return strings.TrimRight(sb.String(), " ")
}
