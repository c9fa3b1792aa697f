package normalizer

import "strings"

// stripMaskRuns deletes every maximal run of two or more consecutive
// uppercase 'X' characters. The data source uses such runs to redact
// account numbers, dates and other PII. A lone 'X' is ordinary text and
// is kept. Safe on UTF-8 input because 'X' is a single ASCII byte.
func stripMaskRuns(text string) string {
	if !strings.Contains(text, "XX") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	i := 0
	for i < len(text) {
		if text[i] == 'X' {
			j := i + 1
			for j < len(text) && text[j] == 'X' {
				j++
			}
			if j-i < 2 {
				sb.WriteByte('X')
			}
			i = j
			continue
		}
		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}
