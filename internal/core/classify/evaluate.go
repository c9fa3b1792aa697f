package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
)

// Report holds accuracy and the per-class confusion breakdown for one
// evaluation.
type Report struct {
	Total    int
	Correct  int
	Accuracy float64
	Classes  []string
	// Confusion maps actual label -> predicted label -> count.
	Confusion map[string]map[string]int
}

// Evaluate compares predicted labels against actual labels pairwise.
func Evaluate(predicted, actual []string) (Report, error) {
	if len(predicted) != len(actual) {
		return Report{}, fmt.Errorf("evaluate: %d predictions for %d actual labels", len(predicted), len(actual))
	}

	confusion := make(map[string]map[string]int)
	seen := make(map[string]bool)
	correct := 0
	for i := range actual {
		if predicted[i] == actual[i] {
			correct++
		}
		row := confusion[actual[i]]
		if row == nil {
			row = make(map[string]int)
			confusion[actual[i]] = row
		}
		row[predicted[i]]++
		seen[actual[i]] = true
		seen[predicted[i]] = true
	}

	// Fixed categories first, anything unexpected after, sorted.
	classes := make([]string, 0, len(seen))
	for _, c := range domain.Categories {
		if seen[c] {
			classes = append(classes, c)
			delete(seen, c)
		}
	}
	rest := make([]string, 0, len(seen))
	for c := range seen {
		rest = append(rest, c)
	}
	sort.Strings(rest)
	classes = append(classes, rest...)

	accuracy := 0.0
	if len(actual) > 0 {
		accuracy = float64(correct) / float64(len(actual))
	}

	return Report{
		Total:     len(actual),
		Correct:   correct,
		Accuracy:  accuracy,
		Classes:   classes,
		Confusion: confusion,
	}, nil
}

// String renders the report as a plain-text confusion table, one row per
// actual class.
func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "accuracy: %.4f (%d/%d)\n", r.Accuracy, r.Correct, r.Total)
	for _, actual := range r.Classes {
		row := r.Confusion[actual]
		if row == nil {
			continue
		}
		fmt.Fprintf(&sb, "%-30s", actual)
		for _, predicted := range r.Classes {
			fmt.Fprintf(&sb, " %6d", row[predicted])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
