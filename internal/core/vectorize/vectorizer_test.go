package vectorize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/testutil"
)

func newTestVectorizer(t *testing.T, cfg Config) *Vectorizer {
	t.Helper()
	v, err := New(cfg, testutil.NopLogger{})
	require.NoError(t, err)
	return v
}

func docs(tokenLists ...[]string) []domain.NormalizedRecord {
	out := make([]domain.NormalizedRecord, len(tokenLists))
	for i, toks := range tokenLists {
		out[i] = domain.NormalizedRecord{Tokens: toks}
	}
	return out
}

func TestFitHandComputedThresholds(t *testing.T) {
	// Four documents with known document frequencies:
	//   mortgage: 3 docs (sparsity 0.25)
	//   payment:  2 docs (sparsity 0.50)
	//   escrow:   1 doc  (sparsity 0.75)
	//   fraud:    1 doc  (sparsity 0.75)
	corpus := docs(
		[]string{"mortgage", "payment", "late"},
		[]string{"mortgage", "payment", "payment"},
		[]string{"mortgage", "escrow"},
		[]string{"fraud"},
	)

	// DF >= 2 keeps {mortgage, payment, late? no: late has DF 1}.
	// MaxSparsity 0.6 then keeps both survivors.
	v := newTestVectorizer(t, Config{MinDocFreq: 2, MaxSparsity: 0.6})
	vocab, err := v.Fit(context.Background(), corpus)
	require.NoError(t, err)
	assert.Equal(t, []string{"mortgage", "payment"}, vocab.Terms)

	// Tight sparsity bound prunes payment (sparsity 0.50 > 0.30).
	v = newTestVectorizer(t, Config{MinDocFreq: 2, MaxSparsity: 0.30})
	vocab, err = v.Fit(context.Background(), corpus)
	require.NoError(t, err)
	assert.Equal(t, []string{"mortgage"}, vocab.Terms)
}

func TestFitCountsDocumentFrequencyNotTermFrequency(t *testing.T) {
	// "payment" appears 5 times but in a single document.
	corpus := docs(
		[]string{"payment", "payment", "payment", "payment", "payment"},
		[]string{"mortgage"},
		[]string{"mortgage"},
	)

	v := newTestVectorizer(t, Config{MinDocFreq: 2, MaxSparsity: 1.0})
	vocab, err := v.Fit(context.Background(), corpus)
	require.NoError(t, err)
	assert.Equal(t, []string{"mortgage"}, vocab.Terms)
}

func TestFitEmptyCorpus(t *testing.T) {
	v := newTestVectorizer(t, DefaultConfig())
	_, err := v.Fit(context.Background(), nil)

	var degenerate *domain.DegenerateVocabularyError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 0, degenerate.Documents)
}

func TestFitNoSurvivingTerms(t *testing.T) {
	corpus := docs(
		[]string{"mortgage"},
		[]string{"escrow"},
	)

	v := newTestVectorizer(t, Config{MinDocFreq: 5, MaxSparsity: 0.95})
	_, err := v.Fit(context.Background(), corpus)

	var degenerate *domain.DegenerateVocabularyError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 2, degenerate.Documents)
	assert.Equal(t, 2, degenerate.RawTerms)
}

func TestTransformShapeAndUnseenTerms(t *testing.T) {
	train := docs(
		[]string{"mortgage", "payment", "late"},
		[]string{"credit", "card", "fraud", "dispute"},
		[]string{"mortgage", "escrow", "issue"},
	)

	v := newTestVectorizer(t, Config{MinDocFreq: 1, MaxSparsity: 1.0})
	vocab, err := v.Fit(context.Background(), train)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"card", "credit", "dispute", "escrow", "fraud", "issue", "late", "mortgage", "payment"},
		vocab.Terms,
	)

	// Unseen document: "refund" is outside the vocabulary and dropped.
	assert.True(t, vocab.Contains("mortgage"))
	assert.False(t, vocab.Contains("refund"))
	inference := docs([]string{"mortgage", "refund"})
	matrix, err := v.Transform(context.Background(), vocab, inference)
	require.NoError(t, err)

	require.Equal(t, 1, matrix.RowCount())
	require.Equal(t, vocab.Size(), matrix.ColCount())

	for i, term := range vocab.Terms {
		want := 0
		if term == "mortgage" {
			want = 1
		}
		assert.Equal(t, want, matrix.Rows[0][i], "column %q", term)
	}
}

func TestTransformEmptyTokensYieldZeroRow(t *testing.T) {
	train := docs([]string{"mortgage"}, []string{"mortgage"})

	v := newTestVectorizer(t, Config{MinDocFreq: 1, MaxSparsity: 1.0})
	vocab, err := v.Fit(context.Background(), train)
	require.NoError(t, err)

	matrix, err := v.Transform(context.Background(), vocab, docs(nil, []string{"mortgage", "mortgage"}))
	require.NoError(t, err)

	require.Equal(t, 2, matrix.RowCount())
	assert.Equal(t, []int{0}, matrix.Rows[0])
	assert.Equal(t, []int{2}, matrix.Rows[1])
}

func TestTransformCollectsLabels(t *testing.T) {
	train := []domain.NormalizedRecord{
		{Label: domain.CategoryMortgage, Tokens: []string{"mortgage"}},
		{Label: domain.CategoryCreditCard, Tokens: []string{"card"}},
	}

	v := newTestVectorizer(t, Config{MinDocFreq: 1, MaxSparsity: 1.0})
	vocab, err := v.Fit(context.Background(), train)
	require.NoError(t, err)

	matrix, err := v.Transform(context.Background(), vocab, train)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CategoryMortgage, domain.CategoryCreditCard}, matrix.Labels)

	// Inference corpora carry no labels.
	matrix, err = v.Transform(context.Background(), vocab, docs([]string{"mortgage"}))
	require.NoError(t, err)
	assert.Nil(t, matrix.Labels)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{MinDocFreq: 0, MaxSparsity: 0.95}.Validate())
	assert.Error(t, Config{MinDocFreq: 1, MaxSparsity: 0}.Validate())
	assert.Error(t, Config{MinDocFreq: 1, MaxSparsity: 1.5}.Validate())
	assert.NoError(t, DefaultConfig().Validate())
}
