package annotator

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is the in-memory annotation table: one row per task, in the stable
// order of the source dataset.
type Table struct {
	rows []Row
}

// Len returns the number of task rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at index.
func (t *Table) Row(index int) (Row, error) {
	if index < 0 || index >= len(t.rows) {
		return Row{}, fmt.Errorf("row index %d out of range [0, %d)", index, len(t.rows))
	}
	return t.rows[index], nil
}

// SetCorrected writes an annotation value into the row at index.
func (t *Table) SetCorrected(index int, value string) error {
	if index < 0 || index >= len(t.rows) {
		return fmt.Errorf("row index %d out of range [0, %d)", index, len(t.rows))
	}
	t.rows[index].Corrected = value
	return nil
}

// LoadTasks reads the read-only source dataset. The file and all four required
// columns must be present; annotation cannot proceed without them.
func LoadTasks(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("task file %s not found", path)
		}
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()
	table, err := readTable(f, true)
	if err != nil {
		return nil, fmt.Errorf("load tasks %s: %w", path, err)
	}
	return table, nil
}

// readTable decodes a CSV table, resolving the four required columns by header
// name. With requireAll unset, absent columns are backfilled as empty strings.
func readTable(r io.Reader, requireAll bool) (*Table, error) {
	reader := csv.NewReader(decodeUTF8(r))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty table")
	}
	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = cleanCell(cell)
	}
	indexes := make(map[string]int, 4)
	for _, col := range RequiredColumns() {
		indexes[col] = findColumn(header, col)
		if indexes[col] < 0 && requireAll {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			OriginalForm:  cellAt(rec, indexes[ColOriginalForm]),
			PreCorrection: cellAt(rec, indexes[ColPreCorrection]),
			Corrected:     cellAt(rec, indexes[ColCorrected]),
			Candidates:    cellAt(rec, indexes[ColCandidates]),
		})
	}
	return &Table{rows: rows}, nil
}

func findColumn(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func cellAt(rec []string, index int) string {
	if index < 0 || index >= len(rec) {
		return ""
	}
	return rec[index]
}

// ProgressStore owns the durable annotation table.
type ProgressStore struct {
	path  string
	table *Table
}

// LoadOrInit opens existing progress at progressPath, or bootstraps it from
// the task dataset when no progress file exists yet. The bootstrap clears
// 校对后 for every row and writes the initial file immediately, so the durable
// store exists from the first session on.
func LoadOrInit(progressPath, tasksPath string) (*ProgressStore, error) {
	s := &ProgressStore{path: progressPath}
	f, err := os.Open(progressPath)
	switch {
	case err == nil:
		defer f.Close()
		table, err := readTable(f, false)
		if err != nil {
			return nil, fmt.Errorf("load progress %s: %w", progressPath, err)
		}
		s.table = table
		return s, nil
	case errors.Is(err, os.ErrNotExist):
		table, err := LoadTasks(tasksPath)
		if err != nil {
			return nil, err
		}
		for i := range table.rows {
			table.rows[i].Corrected = ""
		}
		s.table = table
		if err := s.Persist(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("open progress %s: %w", progressPath, err)
	}
}

// Path returns the durable file location.
func (s *ProgressStore) Path() string { return s.path }

// Len returns the number of task rows.
func (s *ProgressStore) Len() int { return s.table.Len() }

// Row returns the row at index.
func (s *ProgressStore) Row(index int) (Row, error) { return s.table.Row(index) }

// SetCorrected writes an annotation value into the row at index.
func (s *ProgressStore) SetCorrected(index int, value string) error {
	return s.table.SetCorrected(index, value)
}

// Persist rewrites the whole progress file from the in-memory table. Writes go
// through a temp file and rename so a failed write never truncates the last
// good snapshot.
func (s *ProgressStore) Persist() error {
	data, err := s.ExportCSV()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create progress dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename progress: %w", err)
	}
	return nil
}

// ExportCSV renders the table in the durable format: the four columns in
// dataset order, one row per task, UTF-8.
func (s *ProgressStore) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(RequiredColumns()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range s.table.rows {
		rec := []string{row.OriginalForm, row.PreCorrection, row.Corrected, row.Candidates}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush table: %w", err)
	}
	return buf.Bytes(), nil
}
