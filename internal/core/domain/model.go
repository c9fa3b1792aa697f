package domain

// Category values accepted for labeled records. The label domain is fixed;
// anything else at training time is a LabelDomainError.
const (
	CategoryCreditCard  = "Credit card or prepaid card"
	CategoryMortgage    = "Mortgage"
	CategoryStudentLoan = "Student loan"
	CategoryVehicleLoan = "Vehicle loan or lease"
)

// Categories lists the fixed label domain in report order.
var Categories = []string{
	CategoryCreditCard,
	CategoryMortgage,
	CategoryStudentLoan,
	CategoryVehicleLoan,
}

// ValidCategory reports whether label is one of the fixed categories.
func ValidCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}

// Record is one raw complaint as read from the input file.
// Label is empty for inference-time records.
type Record struct {
	Label string
	Text  string
}

// NormalizedRecord is a Record after the cleaning pipeline has run.
// Tokens preserves in-text order; it may be empty if the narrative
// cleaned down to nothing (the record is still kept for row alignment).
type NormalizedRecord struct {
	Label  string
	Tokens []string
}

// Vocabulary is the set of terms retained after document-frequency and
// sparsity pruning. It is built once from a training corpus and immutable
// afterwards; Terms is sorted and defines the column order of every
// FeatureMatrix produced from it.
type Vocabulary struct {
	Terms []string
	index map[string]int
}

// NewVocabulary builds a Vocabulary from a sorted term slice.
func NewVocabulary(terms []string) *Vocabulary {
	idx := make(map[string]int, len(terms))
	for i, t := range terms {
		idx[t] = i
	}
	return &Vocabulary{Terms: terms, index: idx}
}

// Size returns the number of retained terms.
func (v *Vocabulary) Size() int { return len(v.Terms) }

// Index returns the column index of term, or -1 if the term was pruned
// or never seen at fit time.
func (v *Vocabulary) Index(term string) int {
	if i, ok := v.index[term]; ok {
		return i
	}
	return -1
}

// Contains reports whether term survived pruning.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.index[term]
	return ok
}

// FeatureMatrix is a dense document-term count matrix. Rows follow input
// record order and every row has exactly len(Vocab.Terms) columns.
type FeatureMatrix struct {
	Vocab  *Vocabulary
	Rows   [][]int
	Labels []string // nil for inference corpora
}

// RowCount returns the number of document rows.
func (m *FeatureMatrix) RowCount() int { return len(m.Rows) }

// ColCount returns the vocabulary width of the matrix.
func (m *FeatureMatrix) ColCount() int { return m.Vocab.Size() }
