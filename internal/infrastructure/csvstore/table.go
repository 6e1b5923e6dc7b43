package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	utf8BOM    = "\ufeff"
	timeLayout = "2006-01-02 15:04:05"
)

var errMissingColumns = errors.New("table is missing required columns")

// table is a header-addressed CSV file. Writes are serialized within the
// process; nothing coordinates writers in other processes.
type table struct {
	path   string
	header []string
	mu     sync.Mutex
}

func newTable(path string, header ...string) *table {
	return &table{path: path, header: header}
}

// ensure creates the parent directory and an empty table with its header.
func (t *table) ensure() error {
	if _, err := os.Stat(t.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return err
	}
	return t.writeAll(nil)
}

// readAll returns every row keyed by column name. Short rows are padded
// with empty strings. A header lacking any of required is an error.
func (t *table) readAll(required ...string) ([]map[string]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", t.path, err)
	}
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], utf8BOM)
	}
	for i := range head {
		head[i] = strings.TrimSpace(head[i])
	}
	if missing := missingColumns(head, required); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", errMissingColumns, strings.Join(missing, ", "))
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", t.path, err)
		}
		row := make(map[string]string, len(head))
		for i, col := range head {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeAll replaces the table with header plus rows through a temp file.
func (t *table) writeAll(rows []map[string]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), filepath.Base(t.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(utf8BOM); err != nil {
		_ = tmp.Close()
		return err
	}
	w := csv.NewWriter(tmp)
	if err := w.Write(t.header); err != nil {
		_ = tmp.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(t.record(row)); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), t.path)
}

// appendRow adds one row at the end of the table.
func (t *table) appendRow(row map[string]string) error {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.record(row)); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (t *table) record(row map[string]string) []string {
	rec := make([]string, len(t.header))
	for i, col := range t.header {
		rec[i] = row[col]
	}
	return rec
}

func missingColumns(head, required []string) []string {
	have := make(map[string]struct{}, len(head))
	for _, h := range head {
		have[h] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := have[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
