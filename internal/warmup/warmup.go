package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// Config defines configuration for warming up the pipeline before a
// large batch run: it exercises the normalizer and tokenizer so buffer
// pools and the allocator are primed.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     500,
		SampleTextSize: 2000,
		Duration:       2 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles pipeline warmup operations.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	tokenizers  []ports.Tokenizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterTokenizer adds a tokenizer to be warmed up.
func (wm *Manager) RegisterTokenizer(tok ports.Tokenizer) {
	wm.tokenizers = append(wm.tokenizers, tok)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting pipeline warmup",
		"components", len(wm.normalizers)+len(wm.tokenizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := sampleNarrative(wm.config.SampleTextSize)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
					// Continue
				}

				for _, normalizer := range wm.normalizers {
					cleaned := normalizer.Normalize(sample)
					for _, tokenizer := range wm.tokenizers {
						_ = tokenizer.Tokenize(cleaned)
					}
				}
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Pipeline warmup completed",
		"duration", time.Since(startTime),
	)
}

// sampleNarrative builds a masked-complaint-shaped text of roughly the
// requested size so the warmup exercises the same code paths as real
// input, masking runs included.
func sampleNarrative(size int) string {
	words := []string{
		"i", "was", "charged", "a", "late", "fee", "on", "my", "mortgage",
		"payment", "of", "XXXX", "dollars", "on", "XX/XX/2020", "and",
		"the", "servicer", "refused", "to", "refund", "it", "despite",
		"repeated", "calls", "about", "my", "credit", "card", "account",
	}

	var sb strings.Builder
	for sb.Len() < size {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(words[sb.Len()%len(words)])
	}
	return sb.String()
}
