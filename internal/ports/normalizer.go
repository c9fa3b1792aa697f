package ports

// Normalizer defines the interface for narrative text cleaning.
// Implementations must be deterministic and idempotent: normalizing an
// already-normalized string is a no-op.
type Normalizer interface {
	Normalize(text string) string
}

// Tokenizer splits cleaned text into the token sequence fed to the
// vectorizer, dropping stop words. An empty result is valid.
type Tokenizer interface {
	Tokenize(text string) []string
}
