// Package complaintclassifier cleans consumer-complaint narratives,
// builds a document-term matrix over a pruned vocabulary and trains a
// pluggable classifier to predict the complaint's product category.
//
// Data flows strictly forward through four stages: loader, normalizer,
// vectorizer, classifier adapter. The vocabulary is fit once on the
// training corpus and passed explicitly to every transform call; there
// is no hidden process-wide state.
package complaintclassifier

import (
	"context"

	"github.com/baditaflorin/l"
	"github.com/google/uuid"

	nbayes "github.com/baditaflorin/go_complaint_classifier/internal/adapters/classifier"
	"github.com/baditaflorin/go_complaint_classifier/internal/adapters/loader"
	stdlogger "github.com/baditaflorin/go_complaint_classifier/internal/adapters/logger"
	"github.com/baditaflorin/go_complaint_classifier/internal/adapters/normalizer"
	"github.com/baditaflorin/go_complaint_classifier/internal/core/classify"
	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/core/normalize"
	"github.com/baditaflorin/go_complaint_classifier/internal/core/vectorize"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
	"github.com/baditaflorin/go_complaint_classifier/internal/warmup"
)

// Re-exported domain types so callers rarely need the internal packages.
type (
	// Record is one raw complaint; Label is empty at inference time.
	Record = domain.Record
	// Vocabulary is the immutable fit-time term set.
	Vocabulary = domain.Vocabulary
	// Report carries accuracy and the confusion breakdown.
	Report = classify.Report
	// CVResult carries per-fold cross-validation accuracy.
	CVResult = classify.CVResult
	// SearchResult is the grid-search outcome.
	SearchResult = classify.SearchResult
)

// Pipeline wires the four stages together behind one facade.
type Pipeline struct {
	logger     ports.Logger
	loader     *loader.Loader
	engine     *normalize.Engine
	vectorizer *vectorize.Vectorizer
	evaluator  *classify.Engine
	classifier ports.Classifier
	runID      string
}

// Option defines a functional option for configuring the Pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	MinDocFreq        int
	MaxSparsity       float64
	Folds             int
	Seed              int64
	Workers           int
	ExtraStopWords    []string
	ParallelNormalize bool
	ProductColumn     string
	NarrativeColumn   string
	WarmUp            bool

	Logger     ports.Logger
	Normalizer ports.Normalizer
	Tokenizer  ports.Tokenizer
	Classifier ports.Classifier
}

// WithMinDocFreq sets the document-frequency threshold for vocabulary
// pruning.
func WithMinDocFreq(n int) Option {
	return func(cfg *pipelineConfig) {
		cfg.MinDocFreq = n
	}
}

// WithMaxSparsity sets the sparsity threshold applied after the
// document-frequency filter.
func WithMaxSparsity(s float64) Option {
	return func(cfg *pipelineConfig) {
		cfg.MaxSparsity = s
	}
}

// WithFolds sets the cross-validation fold count.
func WithFolds(k int) Option {
	return func(cfg *pipelineConfig) {
		cfg.Folds = k
	}
}

// WithSeed fixes the fold-shuffle seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(cfg *pipelineConfig) {
		cfg.Seed = seed
	}
}

// WithWorkers bounds grid-search and normalization concurrency.
func WithWorkers(n int) Option {
	return func(cfg *pipelineConfig) {
		cfg.Workers = n
	}
}

// WithExtraStopWords extends the stop-word set.
func WithExtraStopWords(words ...string) Option {
	return func(cfg *pipelineConfig) {
		cfg.ExtraStopWords = append(cfg.ExtraStopWords, words...)
	}
}

// WithParallelNormalization enables the worker-pool path for large
// corpora.
func WithParallelNormalization(enabled bool) Option {
	return func(cfg *pipelineConfig) {
		cfg.ParallelNormalize = enabled
	}
}

// WithColumns overrides the label and narrative column names.
func WithColumns(product, narrative string) Option {
	return func(cfg *pipelineConfig) {
		cfg.ProductColumn = product
		cfg.NarrativeColumn = narrative
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger l.Logger) Option {
	return func(cfg *pipelineConfig) {
		cfg.Logger = stdlogger.FromExisting(logger)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *pipelineConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer selects the ASCII-table normalizer with
// buffer pooling.
func WithOptimizedNormalizer() Option {
	return func(cfg *pipelineConfig) {
		cfg.Normalizer = normalizer.NewOptimizedNormalizer()
	}
}

// WithClassifier sets a custom classification algorithm.
func WithClassifier(c ports.Classifier) Option {
	return func(cfg *pipelineConfig) {
		cfg.Classifier = c
	}
}

// WithWarmUp primes pools and the allocator at construction time.
func WithWarmUp(enabled bool) Option {
	return func(cfg *pipelineConfig) {
		cfg.WarmUp = enabled
	}
}

// New creates a new Pipeline.
func New(opts ...Option) (*Pipeline, error) {
	vecDefaults := vectorize.DefaultConfig()
	cvDefaults := classify.DefaultConfig()

	cfg := &pipelineConfig{
		MinDocFreq:  vecDefaults.MinDocFreq,
		MaxSparsity: vecDefaults.MaxSparsity,
		Folds:       cvDefaults.Folds,
		Seed:        cvDefaults.Seed,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = stdlogger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = normalizer.NewStopWordTokenizer(cfg.ExtraStopWords...)
	}
	if cfg.Classifier == nil {
		cfg.Classifier = nbayes.New(cfg.Logger)
	}

	vectorizer, err := vectorize.New(vectorize.Config{
		MinDocFreq:  cfg.MinDocFreq,
		MaxSparsity: cfg.MaxSparsity,
	}, cfg.Logger)
	if err != nil {
		return nil, err
	}

	evaluator, err := classify.NewEngine(cfg.Classifier, cfg.Logger, classify.Config{
		Folds:   cfg.Folds,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	engine := normalize.NewEngine(cfg.Logger, cfg.Normalizer, cfg.Tokenizer, normalize.Config{
		Workers:  cfg.Workers,
		Parallel: cfg.ParallelNormalize,
	})

	loaderOpts := []loader.Option{}
	if cfg.ProductColumn != "" {
		loaderOpts = append(loaderOpts, loader.WithProductColumn(cfg.ProductColumn))
	}
	if cfg.NarrativeColumn != "" {
		loaderOpts = append(loaderOpts, loader.WithNarrativeColumn(cfg.NarrativeColumn))
	}

	p := &Pipeline{
		logger:     cfg.Logger,
		loader:     loader.New(cfg.Logger, loaderOpts...),
		engine:     engine,
		vectorizer: vectorizer,
		evaluator:  evaluator,
		classifier: cfg.Classifier,
		runID:      uuid.NewString(),
	}

	if cfg.WarmUp {
		wm := warmup.NewManager(cfg.Logger, warmup.DefaultConfig())
		wm.RegisterNormalizer(cfg.Normalizer)
		wm.RegisterTokenizer(cfg.Tokenizer)
		wm.WarmUp(context.Background())
	}

	p.logger.Info("Pipeline created",
		"run_id", p.runID,
		"min_doc_freq", cfg.MinDocFreq,
		"max_sparsity", cfg.MaxSparsity,
		"folds", cfg.Folds,
	)

	return p, nil
}

// RunID identifies this pipeline instance in log output.
func (p *Pipeline) RunID() string { return p.runID }

// LoadTraining reads a labeled complaint file. The second return value
// is the count of records dropped for a missing narrative.
func (p *Pipeline) LoadTraining(path string) ([]Record, int, error) {
	return p.loader.ReadLabeled(path)
}

// LoadInference reads an unlabeled complaint file.
func (p *Pipeline) LoadInference(path string) ([]Record, int, error) {
	return p.loader.ReadUnlabeled(path)
}

// TrainResult is the outcome of Train: the fit vocabulary, the final
// model trained on the full corpus with the winning hyperparameters,
// and the evaluation that selected them.
type TrainResult struct {
	Vocab  *Vocabulary
	Model  ports.Model
	Params map[string]float64
	CV     CVResult
	Search *SearchResult // nil when no grid was given
}

// Train runs the full training pipeline: normalize, fit the vocabulary,
// build the matrix, tune hyperparameters by stratified cross-validation
// (when a grid is given), and train the final model on the whole corpus.
func (p *Pipeline) Train(ctx context.Context, records []Record, grid []map[string]float64) (*TrainResult, error) {
	normalized, err := p.engine.Run(ctx, records)
	if err != nil {
		return nil, err
	}

	vocab, err := p.vectorizer.Fit(ctx, normalized)
	if err != nil {
		return nil, err
	}

	matrix, err := p.vectorizer.Transform(ctx, vocab, normalized)
	if err != nil {
		return nil, err
	}

	result := &TrainResult{Vocab: vocab}

	if len(grid) > 0 {
		search, err := p.evaluator.GridSearch(ctx, matrix, grid)
		if err != nil {
			return nil, err
		}
		result.Search = &search
		result.Params = search.BestParams
	}

	cv, err := p.evaluator.CrossValidate(ctx, matrix, result.Params)
	if err != nil {
		return nil, err
	}
	result.CV = cv

	model, err := p.classifier.Train(ctx, matrix, result.Params)
	if err != nil {
		return nil, err
	}
	result.Model = model

	p.logger.Info("Training completed",
		"run_id", p.runID,
		"vocabulary_size", vocab.Size(),
		"cv_mean_accuracy", cv.MeanAccuracy,
	)

	return result, nil
}

// Predict classifies records with a previously trained result. The
// records are normalized and re-expressed over the training vocabulary;
// unseen terms are dropped, never added.
func (p *Pipeline) Predict(ctx context.Context, trained *TrainResult, records []Record) ([]string, error) {
	normalized, err := p.engine.Run(ctx, records)
	if err != nil {
		return nil, err
	}

	matrix, err := p.vectorizer.Transform(ctx, trained.Vocab, normalized)
	if err != nil {
		return nil, err
	}

	return p.classifier.Predict(ctx, trained.Model, matrix)
}

// Evaluate compares predictions against known labels.
func Evaluate(predicted, actual []string) (Report, error) {
	return classify.Evaluate(predicted, actual)
}
