package dataset

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// DefaultTopWords is how many frequent words a summary lists.
const DefaultTopWords = 10

// DefaultBins is the number of histogram bins over [0, 1].
const DefaultBins = 10

// Describe holds descriptive statistics of the similarity column.
type Describe struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Max   float64 `json:"max"`
}

// WordCount is a word with its number of occurrences.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Bin is one histogram bucket, [Low, High).
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Summary describes a dataset.
type Summary struct {
	Rows        int            `json:"rows"`
	UniqueWords int            `json:"unique_words"`
	Missing     map[string]int `json:"missing"`
	Similarity  Describe       `json:"wup_similarity"`
	TopWordI    []WordCount    `json:"top_word_i"`
	Histogram   []Bin          `json:"histogram"`
}

// Summarize loads rows into an in-memory SQLite database and computes the
// summary with SQL aggregates.
func Summarize(rows []Row, topN, bins int) (*Summary, error) {
	if topN <= 0 {
		topN = DefaultTopWords
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := loadRows(db, rows); err != nil {
		return nil, err
	}

	s := &Summary{Missing: make(map[string]int)}

	var missI, missJ, missSim int
	err = db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(word_i IS NULL OR word_i = ''), 0),
			COALESCE(SUM(word_j IS NULL OR word_j = ''), 0),
			COALESCE(SUM(wup_similarity IS NULL), 0)
		FROM pairs`).Scan(&s.Rows, &missI, &missJ, &missSim)
	if err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}
	s.Missing["word_i"] = missI
	s.Missing["word_j"] = missJ
	s.Missing["wup_similarity"] = missSim

	err = db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT word_i AS w FROM pairs WHERE word_i != ''
			UNION
			SELECT word_j FROM pairs WHERE word_j != ''
		)`).Scan(&s.UniqueWords)
	if err != nil {
		return nil, fmt.Errorf("counting words: %w", err)
	}

	if s.Similarity, err = describe(db); err != nil {
		return nil, err
	}
	if s.TopWordI, err = topWords(db, topN); err != nil {
		return nil, err
	}
	if s.Histogram, err = histogram(db, bins); err != nil {
		return nil, err
	}
	return s, nil
}

func loadRows(db *sql.DB, rows []Row) error {
	if _, err := db.Exec(`CREATE TABLE pairs (
		word_i TEXT,
		word_j TEXT,
		wup_similarity REAL
	)`); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO pairs (word_i, word_j, wup_similarity) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		var sim sql.NullFloat64
		if r.Similarity != nil {
			sim = sql.NullFloat64{Float64: *r.Similarity, Valid: true}
		}
		if _, err := stmt.Exec(r.WordI, r.WordJ, sim); err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// describe mirrors a pandas describe(): sample standard deviation and
// linearly interpolated quartiles.
func describe(db *sql.DB) (Describe, error) {
	var d Describe
	var mean, sumsq, lo, hi sql.NullFloat64
	err := db.QueryRow(`
		SELECT COUNT(wup_similarity), AVG(wup_similarity),
			SUM(wup_similarity * wup_similarity),
			MIN(wup_similarity), MAX(wup_similarity)
		FROM pairs`).Scan(&d.Count, &mean, &sumsq, &lo, &hi)
	if err != nil {
		return d, fmt.Errorf("describing similarity: %w", err)
	}
	if d.Count == 0 {
		return d, nil
	}
	d.Mean, d.Min, d.Max = mean.Float64, lo.Float64, hi.Float64
	if d.Count > 1 {
		n := float64(d.Count)
		v := (sumsq.Float64 - n*d.Mean*d.Mean) / (n - 1)
		d.Std = math.Sqrt(math.Max(v, 0))
	}

	rows, err := db.Query(`SELECT wup_similarity FROM pairs WHERE wup_similarity IS NOT NULL ORDER BY wup_similarity`)
	if err != nil {
		return d, fmt.Errorf("querying similarity values: %w", err)
	}
	defer rows.Close()

	values := make([]float64, 0, d.Count)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return d, fmt.Errorf("scanning similarity: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return d, err
	}
	d.P25 = quantile(values, 0.25)
	d.P50 = quantile(values, 0.50)
	d.P75 = quantile(values, 0.75)
	return d, nil
}

// quantile interpolates linearly between closest ranks of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

func topWords(db *sql.DB, n int) ([]WordCount, error) {
	rows, err := db.Query(`
		SELECT word_i, COUNT(*) AS c FROM pairs
		WHERE word_i != ''
		GROUP BY word_i
		ORDER BY c DESC, word_i
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying top words: %w", err)
	}
	defer rows.Close()

	var out []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("scanning top words: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

// histogram buckets similarity into equal-width bins over [0, 1]; a score
// of exactly 1 lands in the last bin. The scaled score is rounded before
// truncation so 0.29 * 100 lands in bin 29, not 28.
func histogram(db *sql.DB, bins int) ([]Bin, error) {
	out := make([]Bin, bins)
	width := 1.0 / float64(bins)
	for i := range out {
		out[i] = Bin{Low: float64(i) * width, High: float64(i+1) * width}
	}

	rows, err := db.Query(`
		SELECT MIN(CAST(ROUND(wup_similarity * ?, 9) AS INTEGER), ?) AS b, COUNT(*)
		FROM pairs
		WHERE wup_similarity IS NOT NULL
		GROUP BY b`, bins, bins-1)
	if err != nil {
		return nil, fmt.Errorf("querying histogram: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b, c int
		if err := rows.Scan(&b, &c); err != nil {
			return nil, fmt.Errorf("scanning histogram: %w", err)
		}
		if b >= 0 && b < bins {
			out[b].Count += c
		}
	}
	return out, rows.Err()
}
