package classify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nb "github.com/baditaflorin/go_complaint_classifier/internal/adapters/classifier"
	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
	"github.com/baditaflorin/go_complaint_classifier/internal/testutil"
)

func TestStratifiedFoldsPartition(t *testing.T) {
	// 60/40 split across two labels, n=100, k=10.
	labels := make([]string, 100)
	for i := range labels {
		if i < 60 {
			labels[i] = domain.CategoryMortgage
		} else {
			labels[i] = domain.CategoryCreditCard
		}
	}

	folds, err := StratifiedFolds(labels, 10, 7)
	require.NoError(t, err)
	require.Len(t, folds, 10)

	// Every record appears in exactly one fold.
	seen := make(map[int]int)
	for _, fold := range folds {
		for _, idx := range fold {
			seen[idx]++
		}
	}
	require.Len(t, seen, 100)
	for idx, count := range seen {
		assert.Equal(t, 1, count, "record %d", idx)
	}

	// Per-fold label proportions match the overall 60/40 split within
	// integer rounding: each 10-record fold holds 6 mortgage, 4 card.
	for f, fold := range folds {
		require.Len(t, fold, 10, "fold %d", f)
		mortgage := 0
		for _, idx := range fold {
			if labels[idx] == domain.CategoryMortgage {
				mortgage++
			}
		}
		assert.Equal(t, 6, mortgage, "fold %d", f)
	}
}

func TestStratifiedFoldsDeterministic(t *testing.T) {
	labels := make([]string, 40)
	for i := range labels {
		labels[i] = domain.Categories[i%4]
	}

	a, err := StratifiedFolds(labels, 5, 99)
	require.NoError(t, err)
	b, err := StratifiedFolds(labels, 5, 99)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := StratifiedFolds(labels, 5, 100)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds should shuffle differently")
}

func TestStratifiedFoldsRejectsBadInput(t *testing.T) {
	_, err := StratifiedFolds([]string{"a", "b", "c"}, 1, 0)
	assert.Error(t, err)

	_, err = StratifiedFolds([]string{"a", "b", "c"}, 5, 0)
	assert.Error(t, err)
}

// syntheticMatrix builds an easily separable labeled matrix: mortgage
// documents count on column 0, credit card documents on column 1.
func syntheticMatrix(n int) *domain.FeatureMatrix {
	vocab := domain.NewVocabulary([]string{"mortgage", "card"})
	rows := make([][]int, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			rows[i] = []int{2 + i%3, 0}
			labels[i] = domain.CategoryMortgage
		} else {
			rows[i] = []int{0, 2 + i%3}
			labels[i] = domain.CategoryCreditCard
		}
	}
	return &domain.FeatureMatrix{Vocab: vocab, Rows: rows, Labels: labels}
}

func TestCrossValidateSeparable(t *testing.T) {
	e, err := NewEngine(nb.New(testutil.NopLogger{}), testutil.NopLogger{}, Config{Folds: 10, Seed: 1})
	require.NoError(t, err)

	result, err := e.CrossValidate(context.Background(), syntheticMatrix(100), nil)
	require.NoError(t, err)

	require.Len(t, result.FoldAccuracies, 10)
	assert.InDelta(t, 1.0, result.MeanAccuracy, 1e-9, "separable data should classify perfectly")
}

func TestGridSearchSelectsBestAndBreaksTiesByOrder(t *testing.T) {
	e, err := NewEngine(nb.New(testutil.NopLogger{}), testutil.NopLogger{}, Config{Folds: 5, Seed: 1, Workers: 2})
	require.NoError(t, err)

	// All combinations score identically on separable data, so the
	// first grid entry must win.
	grid := []map[string]float64{
		{nb.ParamSmoothing: 1.0},
		{nb.ParamSmoothing: 0.5},
		{nb.ParamSmoothing: 2.0},
	}

	result, err := e.GridSearch(context.Background(), syntheticMatrix(50), grid)
	require.NoError(t, err)

	assert.Equal(t, 0, result.BestIndex)
	assert.Equal(t, grid[0], result.BestParams)
	require.Len(t, result.Scores, 3)
	for i, s := range result.Scores {
		assert.InDelta(t, result.BestScore, s, 1e-9, "combination %d", i)
	}
}

func TestGridSearchEmptyGrid(t *testing.T) {
	e, err := NewEngine(nb.New(testutil.NopLogger{}), testutil.NopLogger{}, DefaultConfig())
	require.NoError(t, err)

	_, err = e.GridSearch(context.Background(), syntheticMatrix(50), nil)
	assert.Error(t, err)
}

// failingClassifier fails Train for a specific smoothing value.
type failingClassifier struct {
	inner   ports.Classifier
	failsOn float64
}

func (f *failingClassifier) Train(ctx context.Context, m *domain.FeatureMatrix, params map[string]float64) (ports.Model, error) {
	if params[nb.ParamSmoothing] == f.failsOn {
		return nil, fmt.Errorf("train failed for smoothing=%g", f.failsOn)
	}
	return f.inner.Train(ctx, m, params)
}

func (f *failingClassifier) Predict(ctx context.Context, model ports.Model, m *domain.FeatureMatrix) ([]string, error) {
	return f.inner.Predict(ctx, model, m)
}

func TestGridSearchFailsWholeSearchOnSingleError(t *testing.T) {
	fc := &failingClassifier{inner: nb.New(testutil.NopLogger{}), failsOn: 0.5}
	e, err := NewEngine(fc, testutil.NopLogger{}, Config{Folds: 5, Seed: 1, Workers: 4})
	require.NoError(t, err)

	grid := []map[string]float64{
		{nb.ParamSmoothing: 1.0},
		{nb.ParamSmoothing: 0.5}, // poisoned combination
		{nb.ParamSmoothing: 2.0},
	}

	_, err = e.GridSearch(context.Background(), syntheticMatrix(50), grid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smoothing=0.5")
}

func TestEvaluateAccuracyAndConfusion(t *testing.T) {
	actual := []string{
		domain.CategoryMortgage,
		domain.CategoryMortgage,
		domain.CategoryCreditCard,
		domain.CategoryStudentLoan,
	}
	predicted := []string{
		domain.CategoryMortgage,
		domain.CategoryCreditCard,
		domain.CategoryCreditCard,
		domain.CategoryStudentLoan,
	}

	report, err := Evaluate(predicted, actual)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Correct)
	assert.InDelta(t, 0.75, report.Accuracy, 1e-9)
	assert.Equal(t, 1, report.Confusion[domain.CategoryMortgage][domain.CategoryCreditCard])
	assert.Equal(t, 1, report.Confusion[domain.CategoryMortgage][domain.CategoryMortgage])

	// Fixed category order in the class list.
	assert.Equal(t, []string{
		domain.CategoryCreditCard,
		domain.CategoryMortgage,
		domain.CategoryStudentLoan,
	}, report.Classes)
}

func TestEvaluateLengthMismatch(t *testing.T) {
	_, err := Evaluate([]string{"a"}, []string{"a", "b"})
	assert.Error(t, err)
}

func TestCrossValidateCancelled(t *testing.T) {
	e, err := NewEngine(nb.New(testutil.NopLogger{}), testutil.NopLogger{}, Config{Folds: 5, Seed: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.CrossValidate(ctx, syntheticMatrix(50), nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
