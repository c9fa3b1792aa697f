package normalize

import (
	"context"
	"runtime"
	"time"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// Constants for batch normalization
const (
	// ContextCheckFrequency defines how often the sequential path checks
	// for context cancellation
	ContextCheckFrequency = 5000 // records

	// ParallelThreshold is the corpus size below which the parallel path
	// is not worth the goroutine overhead
	ParallelThreshold = 256
)

// Config defines configuration for the batch normalization engine.
type Config struct {
	// Workers is the worker count for the parallel path; 0 means
	// runtime.NumCPU().
	Workers int
	// Parallel enables the worker-pool path for large corpora.
	Parallel bool
}

// Engine applies the cleaning pipeline and tokenizer to whole corpora.
// Each record is independent; the engine only guarantees that output
// order equals input order.
type Engine struct {
	logger     ports.Logger
	normalizer ports.Normalizer
	tokenizer  ports.Tokenizer
	workers    int
	parallel   bool
}

// NewEngine creates a batch normalization engine.
func NewEngine(logger ports.Logger, normalizer ports.Normalizer, tokenizer ports.Tokenizer, config Config) *Engine {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Engine{
		logger:     logger,
		normalizer: normalizer,
		tokenizer:  tokenizer,
		workers:    workers,
		parallel:   config.Parallel,
	}
}

// Run normalizes and tokenizes every record, preserving input order.
// Records that clean down to zero tokens are kept with an empty token
// slice so rows stay aligned with labels.
func (e *Engine) Run(ctx context.Context, records []domain.Record) ([]domain.NormalizedRecord, error) {
	startTime := time.Now()

	var (
		out []domain.NormalizedRecord
		err error
	)
	if e.parallel && len(records) >= ParallelThreshold {
		out, err = e.runParallel(ctx, records)
	} else {
		out, err = e.runSequential(ctx, records)
	}
	if err != nil {
		return nil, err
	}

	empty := 0
	for _, nr := range out {
		if len(nr.Tokens) == 0 {
			empty++
		}
	}

	e.logger.Debug("Batch normalization completed",
		"records", len(records),
		"empty_after_cleaning", empty,
		"duration", time.Since(startTime),
	)

	return out, nil
}

// runSequential processes records one by one with periodic context checks.
func (e *Engine) runSequential(ctx context.Context, records []domain.Record) ([]domain.NormalizedRecord, error) {
	out := make([]domain.NormalizedRecord, len(records))
	contextCheckCounter := 0

	for i, rec := range records {
		contextCheckCounter++
		if contextCheckCounter >= ContextCheckFrequency {
			select {
			case <-ctx.Done():
				e.logger.Warn("Normalization cancelled by context", "error", ctx.Err())
				return nil, ctx.Err()
			default:
				// Continue processing
			}
			contextCheckCounter = 0
		}

		out[i] = e.normalizeOne(rec)
	}

	return out, nil
}

// normalizeOne runs the fixed pipeline for a single record.
func (e *Engine) normalizeOne(rec domain.Record) domain.NormalizedRecord {
	cleaned := e.normalizer.Normalize(rec.Text)
	return domain.NormalizedRecord{
		Label:  rec.Label,
		Tokens: e.tokenizer.Tokenize(cleaned),
	}
}
