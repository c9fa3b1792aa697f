package domain

import "fmt"

// DegenerateVocabularyError indicates that fitting produced no usable
// vocabulary: either the corpus was empty or no term survived both
// pruning filters. Proceeding would mean a zero-width matrix, so the
// run aborts instead.
type DegenerateVocabularyError struct {
	Documents int // documents seen at fit time
	RawTerms  int // distinct terms before pruning
}

func (e *DegenerateVocabularyError) Error() string {
	if e.Documents == 0 {
		return "degenerate vocabulary: fit called on an empty corpus"
	}
	return fmt.Sprintf("degenerate vocabulary: no term survived pruning (%d documents, %d raw terms)", e.Documents, e.RawTerms)
}

// LabelDomainError indicates a training-time label outside the fixed
// category set.
type LabelDomainError struct {
	Label string
	Row   int // zero-based record index within the input
}

func (e *LabelDomainError) Error() string {
	return fmt.Sprintf("label %q at row %d is not one of the fixed product categories", e.Label, e.Row)
}
