package ports

import (
	"context"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
)

// Model is an opaque trained classifier. Implementations own its contents.
type Model interface {
	// Classes returns the label set the model was trained on.
	Classes() []string
}

// Classifier abstracts the classification algorithm behind the pipeline.
// The pipeline never assumes a particular algorithm; any implementation
// that is deterministic for a fixed seed and hyperparameters satisfies
// the contract.
type Classifier interface {
	// Train fits a model on a feature matrix and its paired labels.
	// params carries algorithm-specific hyperparameters; unknown keys
	// are ignored.
	Train(ctx context.Context, matrix *domain.FeatureMatrix, params map[string]float64) (Model, error)

	// Predict returns one predicted label per matrix row, in row order.
	Predict(ctx context.Context, model Model, matrix *domain.FeatureMatrix) ([]string, error)
}
