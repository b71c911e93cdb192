// Package ohsumed turns the OHSUMED corpus, one directory per MeSH disease
// category (C01, C02, ...), into a title/abstract/label CSV.
package ohsumed

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding/charmap"
)

// CategoryPattern selects category directories under the corpus root.
const CategoryPattern = "C*"

// Header is the column layout of the corpus CSV.
var Header = []string{"title", "abstract", "label"}

// ErrNoCategories is returned when the root holds no category directory.
var ErrNoCategories = errors.New("no category directories found")

// Record is one document: the first line is the title, the rest the abstract.
type Record struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Label    string `json:"label"`
}

// Stats counts what a scan saw.
type Stats struct {
	Categories int            `json:"categories"`
	Files      int            `json:"files"`
	Records    int            `json:"records"`
	Skipped    int            `json:"skipped"` // Empty title or abstract
	Unreadable int            `json:"unreadable"`
	PerLabel   map[string]int `json:"per_label"`
}

// Scan reads every category directory of fsys in sorted order. Files are
// decoded as Latin-1. Unreadable files are logged and skipped.
func Scan(fsys fs.FS, logger *slog.Logger) ([]Record, Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	stats := Stats{PerLabel: make(map[string]int)}

	matches, err := doublestar.Glob(fsys, CategoryPattern)
	if err != nil {
		return nil, stats, fmt.Errorf("listing categories: %w", err)
	}
	var categories []string
	for _, m := range matches {
		if info, err := fs.Stat(fsys, m); err == nil && info.IsDir() {
			categories = append(categories, m)
		}
	}
	if len(categories) == 0 {
		return nil, stats, ErrNoCategories
	}
	sort.Strings(categories)
	stats.Categories = len(categories)

	var records []Record
	for _, label := range categories {
		entries, err := fs.ReadDir(fsys, label)
		if err != nil {
			logger.Warn("cannot list category", slog.String("label", label), slog.String("error", err.Error()))
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			stats.Files++
			rec, err := readRecord(fsys, path.Join(label, e.Name()))
			if err != nil {
				stats.Unreadable++
				logger.Warn("cannot read document", slog.String("file", e.Name()), slog.String("error", err.Error()))
				continue
			}
			if rec.Title == "" || rec.Abstract == "" {
				stats.Skipped++
				continue
			}
			rec.Label = label
			records = append(records, rec)
			stats.PerLabel[label]++
		}
		logger.Info("processed category", slog.String("label", label), slog.Int("files", len(entries)))
	}
	stats.Records = len(records)
	return records, stats, nil
}

func readRecord(fsys fs.FS, name string) (Record, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	r := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	title, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return Record{}, err
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Title:    strings.TrimSpace(title),
		Abstract: strings.TrimSpace(string(rest)),
	}, nil
}

// WriteFile writes records as CSV to path.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write([]string{r.Title, r.Abstract, r.Label}); err != nil {
			f.Close()
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing corpus file: %w", err)
	}
	return f.Close()
}
