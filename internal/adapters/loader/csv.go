package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
	"github.com/baditaflorin/go_complaint_classifier/internal/ports"
)

// Default column names in the complaint export format.
const (
	DefaultProductColumn   = "Product"
	DefaultNarrativeColumn = "Consumer complaint narrative"
)

// Loader reads complaint records from CSV files. Files ending in ".gz"
// are decompressed transparently.
type Loader struct {
	logger          ports.Logger
	productColumn   string
	narrativeColumn string
}

// Option defines a functional option for configuring the Loader.
type Option func(*Loader)

// WithProductColumn overrides the label column name.
func WithProductColumn(name string) Option {
	return func(ld *Loader) {
		ld.productColumn = name
	}
}

// WithNarrativeColumn overrides the narrative column name.
func WithNarrativeColumn(name string) Option {
	return func(ld *Loader) {
		ld.narrativeColumn = name
	}
}

// New creates a new Loader.
func New(logger ports.Logger, opts ...Option) *Loader {
	ld := &Loader{
		logger:          logger,
		productColumn:   DefaultProductColumn,
		narrativeColumn: DefaultNarrativeColumn,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// ReadLabeled reads a training file carrying both the product label and
// the narrative. Records with a missing or empty narrative are dropped
// and counted; a label outside the fixed category set fails the read.
// Returns the surviving records and the dropped-record count.
func (ld *Loader) ReadLabeled(path string) ([]domain.Record, int, error) {
	return ld.read(path, true)
}

// ReadUnlabeled reads an inference file carrying only the narrative.
// Labels are absent by design and left empty on every record.
func (ld *Loader) ReadUnlabeled(path string) ([]domain.Record, int, error) {
	return ld.read(path, false)
}

func (ld *Loader) read(path string, labeled bool) ([]domain.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	records, dropped, err := ld.parse(r, labeled)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	ld.logger.Info("Input file loaded",
		"path", path,
		"records", len(records),
		"dropped_missing_narrative", dropped,
		"labeled", labeled,
	)

	return records, dropped, nil
}

// parse consumes CSV rows. Exposed via read; split out so tests can feed
// in-memory input.
func (ld *Loader) parse(r io.Reader, labeled bool) ([]domain.Record, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // header decides; exports vary in padding

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("header: %w", err)
	}

	narrativeIdx := columnIndex(header, ld.narrativeColumn)
	if narrativeIdx < 0 {
		return nil, 0, fmt.Errorf("narrative column %q not found", ld.narrativeColumn)
	}
	productIdx := -1
	if labeled {
		productIdx = columnIndex(header, ld.productColumn)
		if productIdx < 0 {
			return nil, 0, fmt.Errorf("product column %q not found", ld.productColumn)
		}
	}

	var out []domain.Record
	dropped := 0
	row := -1
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		row++

		text := ""
		if narrativeIdx < len(fields) {
			text = sanitize(fields[narrativeIdx])
		}
		if text == "" {
			// Missing narrative: dropped before normalization.
			dropped++
			continue
		}

		rec := domain.Record{Text: text}
		if labeled {
			label := ""
			if productIdx < len(fields) {
				label = strings.TrimSpace(fields[productIdx])
			}
			if !domain.ValidCategory(label) {
				return nil, 0, &domain.LabelDomainError{Label: label, Row: row}
			}
			rec.Label = label
		}
		out = append(out, rec)
	}

	return out, dropped, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// sanitize applies Unicode NFKC normalization, trims whitespace and
// drops control characters other than tab and newline, which the
// cleaning pipeline handles itself.
func sanitize(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimSpace(normed)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}
