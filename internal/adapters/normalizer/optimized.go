package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_complaint_classifier/internal/pool"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// Actions in the ASCII decision table.
const (
	actionKeep byte = iota
	actionDrop
	actionSpace
	actionLower
)

// OptimizedNormalizer implements the same cleaning pipeline as
// DefaultNormalizer with a precomputed ASCII decision table and buffer
// pooling. Complaint narratives are overwhelmingly ASCII, so the fast
// path covers almost all input.
type OptimizedNormalizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192), // 8K bytes initial capacity
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case r == '\t' || r == '\n':
			n.asciiTable[i] = actionDrop
		case unicode.IsDigit(r):
			n.asciiTable[i] = actionDrop
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			n.asciiTable[i] = actionDrop
		case unicode.IsSpace(r):
			n.asciiTable[i] = actionSpace
		case unicode.IsUpper(r):
			n.asciiTable[i] = actionLower
		default:
			n.asciiTable[i] = actionKeep
		}
	}

	return n
}

// Normalize cleans the input narrative. Output is identical to
// DefaultNormalizer.Normalize for any input.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	text = stripMaskRuns(text)

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	lastWasSpace := true // swallows leading whitespace
	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case actionKeep:
				*buffer = append(*buffer, b)
				lastWasSpace = false
			case actionSpace:
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			case actionLower:
				*buffer = append(*buffer, b+('a'-'A'))
				lastWasSpace = false
			}
		}
	} else {
		for _, r := range text {
			if r < 128 {
				switch n.asciiTable[r] {
				case actionKeep:
					*buffer = append(*buffer, byte(r))
					lastWasSpace = false
				case actionSpace:
					if !lastWasSpace {
						*buffer = append(*buffer, ' ')
						lastWasSpace = true
					}
				case actionLower:
					*buffer = append(*buffer, byte(r)+('a'-'A'))
					lastWasSpace = false
				}
				continue
			}

			switch {
			case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
				// Deleted.
			case unicode.IsSpace(r):
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			default:
				*buffer = append(*buffer, []byte(string(unicode.ToLower(r)))...)
				lastWasSpace = false
			}
		}
	}

	// Trim the single trailing space left by a whitespace run at the end.
	out := *buffer
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}

	return string(out)
}
