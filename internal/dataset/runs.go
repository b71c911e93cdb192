package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading ledger lines.
const MaxJSONLLineCapacity = 1024 * 1024

// RunRecord describes one sampling run.
type RunRecord struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"`
	Root        string    `json:"root"`
	Output      string    `json:"output"`
	Nodes       int       `json:"nodes"`
	UniqueTerms int       `json:"unique_terms"`
	Requested   int       `json:"requested"`
	Produced    int       `json:"produced"`
	Attempts    int       `json:"attempts"`
	Seed        uint64    `json:"seed"`
	Precision   int       `json:"precision"`
}

// NewRunRecord returns a record with a fresh ID and timestamp.
func NewRunRecord() RunRecord {
	return RunRecord{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

// ReadRuns reads every run from a JSONL ledger. A missing file yields no runs.
func ReadRuns(path string) ([]RunRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run ledger: %w", err)
	}
	defer f.Close()

	var runs []RunRecord
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var run RunRecord
		if err := json.Unmarshal(line, &run); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		runs = append(runs, run)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run ledger: %w", err)
	}
	return runs, nil
}

// AppendRun adds a run to the end of a JSONL ledger.
func AppendRun(path string, run RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening run ledger for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing run: %w", err)
	}
	return nil
}
