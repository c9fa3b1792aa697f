package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// Hyperparameter keys understood by Train. Unknown keys are ignored so a
// shared grid can drive several classifier implementations.
const (
	// ParamSmoothing is the Laplace smoothing constant (default 1.0).
	ParamSmoothing = "smoothing"
	// ParamMinCount zeroes per-class term counts below this value before
	// likelihoods are estimated, pruning noise terms (default 0).
	ParamMinCount = "min_count"
)

// NaiveBayes is a multinomial naive Bayes classifier over raw term
// counts. It exists to prove the Classifier contract; the pipeline works
// with any implementation of ports.Classifier.
type NaiveBayes struct {
	logger ports.Logger
}

// New creates a new NaiveBayes classifier.
func New(logger ports.Logger) *NaiveBayes {
	return &NaiveBayes{logger: logger}
}

var _ ports.Classifier = (*NaiveBayes)(nil)

// model holds per-class log priors and per-term log likelihoods.
type model struct {
	classes       []string
	classLogPrior []float64
	termLogLik    [][]float64 // [class][column]
	width         int
}

// Classes returns the label set the model was trained on.
func (m *model) Classes() []string { return m.classes }

// Train fits class priors and term likelihoods. Training is fully
// deterministic: class order follows the fixed category order and there
// is no random component.
func (c *NaiveBayes) Train(ctx context.Context, matrix *domain.FeatureMatrix, params map[string]float64) (ports.Model, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if matrix.RowCount() == 0 {
		return nil, errors.New("train: empty feature matrix")
	}
	if len(matrix.Labels) != matrix.RowCount() {
		return nil, fmt.Errorf("train: %d labels for %d rows", len(matrix.Labels), matrix.RowCount())
	}
	for i, label := range matrix.Labels {
		if !domain.ValidCategory(label) {
			return nil, &domain.LabelDomainError{Label: label, Row: i}
		}
	}

	smoothing := 1.0
	if v, ok := params[ParamSmoothing]; ok {
		if v <= 0 {
			return nil, fmt.Errorf("train: smoothing must be positive, got %g", v)
		}
		smoothing = v
	}
	minCount := 0.0
	if v, ok := params[ParamMinCount]; ok {
		minCount = v
	}

	width := matrix.ColCount()

	// Classes in fixed category order, restricted to those present.
	present := make(map[string]bool, len(domain.Categories))
	for _, label := range matrix.Labels {
		present[label] = true
	}
	classes := make([]string, 0, len(domain.Categories))
	classIdx := make(map[string]int, len(domain.Categories))
	for _, c := range domain.Categories {
		if present[c] {
			classIdx[c] = len(classes)
			classes = append(classes, c)
		}
	}

	docCounts := make([]float64, len(classes))
	termCounts := make([][]float64, len(classes))
	for i := range termCounts {
		termCounts[i] = make([]float64, width)
	}

	for row, counts := range matrix.Rows {
		ci := classIdx[matrix.Labels[row]]
		docCounts[ci]++
		for col, n := range counts {
			termCounts[ci][col] += float64(n)
		}
	}

	m := &model{
		classes:       classes,
		classLogPrior: make([]float64, len(classes)),
		termLogLik:    make([][]float64, len(classes)),
		width:         width,
	}

	totalDocs := float64(matrix.RowCount())
	for ci := range classes {
		m.classLogPrior[ci] = math.Log(docCounts[ci] / totalDocs)

		counts := termCounts[ci]
		total := 0.0
		for col := range counts {
			if counts[col] < minCount {
				counts[col] = 0
			}
			total += counts[col]
		}

		lik := make([]float64, width)
		denom := total + smoothing*float64(width)
		for col := range counts {
			lik[col] = math.Log((counts[col] + smoothing) / denom)
		}
		m.termLogLik[ci] = lik
	}

	c.logger.Debug("Naive Bayes training completed",
		"rows", matrix.RowCount(),
		"columns", width,
		"classes", len(classes),
		"smoothing", smoothing,
		"min_count", minCount,
	)

	return m, nil
}

// Predict scores every row against every class and returns the argmax
// label per row, ties broken by fixed class order.
func (c *NaiveBayes) Predict(ctx context.Context, trained ports.Model, matrix *domain.FeatureMatrix) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m, ok := trained.(*model)
	if !ok {
		return nil, fmt.Errorf("predict: model of type %T was not trained by this classifier", trained)
	}
	if matrix.ColCount() != m.width {
		return nil, fmt.Errorf("predict: matrix width %d does not match model width %d", matrix.ColCount(), m.width)
	}

	out := make([]string, matrix.RowCount())
	for row, counts := range matrix.Rows {
		best := 0
		bestScore := math.Inf(-1)
		for ci := range m.classes {
			score := m.classLogPrior[ci]
			lik := m.termLogLik[ci]
			for col, n := range counts {
				if n != 0 {
					score += float64(n) * lik[col]
				}
			}
			if score > bestScore {
				best = ci
				bestScore = score
			}
		}
		out[row] = m.classes[best]
	}

	return out, nil
}
