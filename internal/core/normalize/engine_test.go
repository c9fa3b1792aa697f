package normalize

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_complaint_classifier/internal/adapters/normalizer"
	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/testutil"
)

func newTestEngine(cfg Config) *Engine {
	return NewEngine(
		testutil.NopLogger{},
		normalizer.NewDefaultNormalizer(),
		normalizer.NewStopWordTokenizer(),
		cfg,
	)
}

func TestRunPreservesOrderAndLabels(t *testing.T) {
	e := newTestEngine(Config{})

	records := []domain.Record{
		{Label: domain.CategoryMortgage, Text: "Mortgage payment was LATE!"},
		{Label: domain.CategoryCreditCard, Text: "Credit card fraud dispute XXXX"},
		{Label: domain.CategoryStudentLoan, Text: "XXXX 1234"},
	}

	out, err := e.Run(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, out, len(records))

	assert.Equal(t, domain.CategoryMortgage, out[0].Label)
	assert.Equal(t, []string{"mortgage", "payment", "late"}, out[0].Tokens)
	assert.Equal(t, []string{"credit", "card", "fraud", "dispute"}, out[1].Tokens)

	// Cleaned-to-nothing record stays in place with zero tokens.
	assert.Equal(t, domain.CategoryStudentLoan, out[2].Label)
	assert.Empty(t, out[2].Tokens)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	// Enough records to cross the parallel threshold.
	records := make([]domain.Record, ParallelThreshold*2)
	for i := range records {
		records[i] = domain.Record{
			Label: domain.CategoryMortgage,
			Text:  fmt.Sprintf("Mortgage escrow issue number %d on XX/XX/2020", i),
		}
	}

	seq := newTestEngine(Config{})
	par := newTestEngine(Config{Parallel: true, Workers: 4})

	want, err := seq.Run(context.Background(), records)
	require.NoError(t, err)
	got, err := par.Run(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i], "row %d", i)
	}
}

func TestRunParallelCancelled(t *testing.T) {
	records := make([]domain.Record, ParallelThreshold)
	for i := range records {
		records[i] = domain.Record{Text: "some narrative text"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(Config{Parallel: true})
	_, err := e.Run(ctx, records)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptyCorpus(t *testing.T) {
	e := newTestEngine(Config{})
	out, err := e.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
