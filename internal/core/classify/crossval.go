package classify

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// Config holds configuration for cross-validation and grid search.
type Config struct {
	// Folds is the cross-validation fold count.
	Folds int
	// Seed drives the fold shuffle; a fixed seed makes runs reproducible.
	Seed int64
	// Workers bounds grid-search concurrency; 0 means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Folds:   10,
		Seed:    1,
		Workers: 0,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Folds < 2 {
		return errors.New("folds must be at least 2")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// Engine runs model evaluation: stratified cross-validation and
// hyperparameter grid search over a pluggable classifier.
type Engine struct {
	classifier ports.Classifier
	logger     ports.Logger
	config     Config
}

// NewEngine creates a new evaluation engine.
func NewEngine(classifier ports.Classifier, logger ports.Logger, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = runtime.NumCPU()
	}

	return &Engine{
		classifier: classifier,
		logger:     logger,
		config:     config,
	}, nil
}

// StratifiedFolds partitions record indices into k folds preserving
// per-fold label proportions as closely as integer rounding allows.
// Every index lands in exactly one fold. The assignment is deterministic
// for a given seed.
func StratifiedFolds(labels []string, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("stratified folds: k must be at least 2, got %d", k)
	}
	if len(labels) < k {
		return nil, fmt.Errorf("stratified folds: %d records cannot fill %d folds", len(labels), k)
	}

	// Group indices per label, iterating groups in a fixed order.
	groups := make(map[string][]int)
	order := make([]string, 0)
	for i, label := range labels {
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], i)
	}
	sort.Strings(order)

	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)

	// Deal each shuffled group round-robin, carrying the fold cursor
	// across groups so fold sizes stay balanced overall.
	cursor := 0
	for _, label := range order {
		idxs := groups[label]
		rng.Shuffle(len(idxs), func(a, b int) { idxs[a], idxs[b] = idxs[b], idxs[a] })
		for _, idx := range idxs {
			f := cursor % k
			folds[f] = append(folds[f], idx)
			cursor++
		}
	}

	return folds, nil
}

// CVResult holds per-fold and aggregate cross-validation accuracy.
type CVResult struct {
	FoldAccuracies []float64
	MeanAccuracy   float64
}

// CrossValidate trains on k-1 folds and evaluates on the held-out fold,
// for each fold in turn, returning the mean accuracy. A single failed
// fold fails the whole run.
func (e *Engine) CrossValidate(ctx context.Context, matrix *domain.FeatureMatrix, params map[string]float64) (CVResult, error) {
	folds, err := StratifiedFolds(matrix.Labels, e.config.Folds, e.config.Seed)
	if err != nil {
		return CVResult{}, err
	}

	accs := make([]float64, len(folds))
	for f := range folds {
		acc, err := e.evaluateFold(ctx, matrix, folds, f, params)
		if err != nil {
			return CVResult{}, fmt.Errorf("fold %d: %w", f, err)
		}
		accs[f] = acc
	}

	return newCVResult(accs), nil
}

// evaluateFold trains on every fold except holdout and returns accuracy
// on the holdout fold.
func (e *Engine) evaluateFold(ctx context.Context, matrix *domain.FeatureMatrix, folds [][]int, holdout int, params map[string]float64) (float64, error) {
	trainIdx := make([]int, 0, matrix.RowCount())
	for f, idxs := range folds {
		if f != holdout {
			trainIdx = append(trainIdx, idxs...)
		}
	}

	trainMatrix := subsetMatrix(matrix, trainIdx)
	testMatrix := subsetMatrix(matrix, folds[holdout])

	model, err := e.classifier.Train(ctx, trainMatrix, params)
	if err != nil {
		return 0, err
	}

	predicted, err := e.classifier.Predict(ctx, model, testMatrix)
	if err != nil {
		return 0, err
	}

	report, err := Evaluate(predicted, testMatrix.Labels)
	if err != nil {
		return 0, err
	}
	return report.Accuracy, nil
}

// subsetMatrix selects rows by index, sharing row slices with the parent.
func subsetMatrix(matrix *domain.FeatureMatrix, idxs []int) *domain.FeatureMatrix {
	rows := make([][]int, len(idxs))
	labels := make([]string, len(idxs))
	for i, idx := range idxs {
		rows[i] = matrix.Rows[idx]
		labels[i] = matrix.Labels[idx]
	}
	return &domain.FeatureMatrix{
		Vocab:  matrix.Vocab,
		Rows:   rows,
		Labels: labels,
	}
}

func newCVResult(accs []float64) CVResult {
	sum := 0.0
	for _, a := range accs {
		sum += a
	}
	return CVResult{
		FoldAccuracies: accs,
		MeanAccuracy:   sum / float64(len(accs)),
	}
}
