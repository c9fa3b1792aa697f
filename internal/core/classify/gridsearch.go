package classify

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
)

// SearchResult is the outcome of a hyperparameter grid search.
type SearchResult struct {
	// BestIndex is the position of the winning combination in the grid.
	BestIndex int
	// BestParams is the winning combination.
	BestParams map[string]float64
	// BestScore is its mean cross-validation accuracy.
	BestScore float64
	// Scores holds every combination's mean accuracy, in grid order.
	Scores []float64
}

// GridSearch cross-validates every hyperparameter combination and picks
// the one with the highest mean accuracy, ties broken by grid order.
// Each (combination, fold) pair is independent and side-effect free, so
// the pairs run on a bounded worker pool; a single failure aborts the
// whole search.
func (e *Engine) GridSearch(ctx context.Context, matrix *domain.FeatureMatrix, grid []map[string]float64) (SearchResult, error) {
	if len(grid) == 0 {
		return SearchResult{}, errors.New("grid search: empty grid")
	}

	startTime := time.Now()

	folds, err := StratifiedFolds(matrix.Labels, e.config.Folds, e.config.Seed)
	if err != nil {
		return SearchResult{}, err
	}

	// accs[combination][fold], each cell written by exactly one task.
	accs := make([][]float64, len(grid))
	for i := range accs {
		accs[i] = make([]float64, len(folds))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	for ci := range grid {
		for fi := range folds {
			g.Go(func() error {
				acc, err := e.evaluateFold(gctx, matrix, folds, fi, grid[ci])
				if err != nil {
					return err
				}
				accs[ci][fi] = acc
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	scores := make([]float64, len(grid))
	best := 0
	for ci := range grid {
		scores[ci] = newCVResult(accs[ci]).MeanAccuracy
		if scores[ci] > scores[best] {
			best = ci
		}
	}

	e.logger.Info("Grid search completed",
		"combinations", len(grid),
		"folds", len(folds),
		"best_index", best,
		"best_score", scores[best],
		"duration", time.Since(startTime),
	)

	return SearchResult{
		BestIndex:  best,
		BestParams: grid[best],
		BestScore:  scores[best],
		Scores:     scores,
	}, nil
}
