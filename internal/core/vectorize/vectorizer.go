package vectorize

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// ContextCheckFrequency defines how often fit/transform loops check for
// context cancellation.
const ContextCheckFrequency = 5000 // documents

// Config holds configuration for vocabulary pruning.
type Config struct {
	// MinDocFreq keeps only terms appearing in at least this many
	// documents.
	MinDocFreq int
	// MaxSparsity then drops terms whose fraction of zero-count
	// documents exceeds this value.
	MaxSparsity float64
}

// DefaultConfig returns the default pruning configuration.
func DefaultConfig() Config {
	return Config{
		MinDocFreq:  1000,
		MaxSparsity: 0.95,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MinDocFreq < 1 {
		return errors.New("minDocFreq must be at least 1")
	}
	if c.MaxSparsity <= 0 || c.MaxSparsity > 1 {
		return errors.New("maxSparsity must be in (0, 1]")
	}
	return nil
}

// Vectorizer builds document-term count matrices over a pruned
// vocabulary. Fit runs on the training corpus only; Transform re-expresses
// any corpus over a previously fit vocabulary.
type Vectorizer struct {
	config Config
	logger ports.Logger
}

// New creates a new Vectorizer.
func New(config Config, logger ports.Logger) (*Vectorizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Vectorizer{
		config: config,
		logger: logger,
	}, nil
}

// Fit builds the vocabulary from a training corpus in two ordered passes:
// first the document-frequency filter, then the sparsity filter over the
// survivors. Term order is lexicographic and defines matrix columns.
func (v *Vectorizer) Fit(ctx context.Context, corpus []domain.NormalizedRecord) (*domain.Vocabulary, error) {
	startTime := time.Now()

	if len(corpus) == 0 {
		return nil, &domain.DegenerateVocabularyError{Documents: 0}
	}

	// Document frequency: each term counted once per document.
	df := make(map[string]int)
	contextCheckCounter := 0
	for _, doc := range corpus {
		contextCheckCounter++
		if contextCheckCounter >= ContextCheckFrequency {
			select {
			case <-ctx.Done():
				v.logger.Warn("Vocabulary fit cancelled by context", "error", ctx.Err())
				return nil, ctx.Err()
			default:
				// Continue processing
			}
			contextCheckCounter = 0
		}

		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, tok := range doc.Tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	docCount := len(corpus)

	// Pass one: document-frequency threshold.
	frequent := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.config.MinDocFreq {
			frequent = append(frequent, term)
		}
	}

	// Pass two: sparsity threshold over the reduced set.
	terms := make([]string, 0, len(frequent))
	for _, term := range frequent {
		sparsity := 1.0 - float64(df[term])/float64(docCount)
		if sparsity <= v.config.MaxSparsity {
			terms = append(terms, term)
		}
	}

	if len(terms) == 0 {
		return nil, &domain.DegenerateVocabularyError{
			Documents: docCount,
			RawTerms:  len(df),
		}
	}

	sort.Strings(terms)

	v.logger.Info("Vocabulary fit completed",
		"documents", docCount,
		"raw_terms", len(df),
		"after_frequency_filter", len(frequent),
		"after_sparsity_filter", len(terms),
		"duration", time.Since(startTime),
	)

	return domain.NewVocabulary(terms), nil
}

// Transform counts vocabulary-term occurrences per record. Terms outside
// the vocabulary are ignored; the vocabulary is never widened here. Row
// order equals input order and every row has vocab.Size() columns.
func (v *Vectorizer) Transform(ctx context.Context, vocab *domain.Vocabulary, corpus []domain.NormalizedRecord) (*domain.FeatureMatrix, error) {
	rows := make([][]int, len(corpus))
	labeled := false
	contextCheckCounter := 0

	for i, doc := range corpus {
		contextCheckCounter++
		if contextCheckCounter >= ContextCheckFrequency {
			select {
			case <-ctx.Done():
				v.logger.Warn("Transform cancelled by context", "error", ctx.Err())
				return nil, ctx.Err()
			default:
				// Continue processing
			}
			contextCheckCounter = 0
		}

		row := make([]int, vocab.Size())
		for _, tok := range doc.Tokens {
			if idx := vocab.Index(tok); idx >= 0 {
				row[idx]++
			}
		}
		rows[i] = row

		if doc.Label != "" {
			labeled = true
		}
	}

	matrix := &domain.FeatureMatrix{
		Vocab: vocab,
		Rows:  rows,
	}
	if labeled {
		labels := make([]string, len(corpus))
		for i, doc := range corpus {
			labels[i] = doc.Label
		}
		matrix.Labels = labels
	}

	return matrix, nil
}
