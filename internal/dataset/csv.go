// Package dataset writes and reads the sampled pair dataset, keeps a ledger
// of sampling runs, and summarizes finished datasets.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/meshwup/meshwup/internal/sampler"
)

// Header is the column layout of a dataset file.
var Header = []string{"word_i", "word_j", "wup_similarity"}

// ErrBadHeader is returned when a file does not start with Header.
var ErrBadHeader = errors.New("unexpected dataset header")

// Row is one dataset line. Similarity is nil when the cell is empty.
type Row struct {
	WordI      string   `json:"word_i"`
	WordJ      string   `json:"word_j"`
	Similarity *float64 `json:"wup_similarity"`
}

// Write writes pairs as CSV with scores formatted to precision digits.
func Write(w io.Writer, pairs []sampler.Pair, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range pairs {
		rec := []string{p.TermI, p.TermJ, strconv.FormatFloat(p.Similarity, 'f', precision, 64)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes pairs to path, replacing existing content.
func WriteFile(path string, pairs []sampler.Pair, precision int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	if err := Write(f, pairs, precision); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses a dataset from r.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, col := range Header {
		if head[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, head[i], col)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", line, err)
		}
		row := Row{WordI: rec[0], WordJ: rec[1]}
		if rec[2] != "" {
			v, err := strconv.ParseFloat(rec[2], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing similarity on line %d: %w", line, err)
			}
			row.Similarity = &v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile parses the dataset at path.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
