// Package csvstore exchanges layer tables with the surrounding I/O
// collaborators as CSV files. Writes are atomic: tables are written to a
// temporary file and renamed into place, so a failed run never leaves a
// partially written table.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"customer_analytics/internal/domain/analytics"
)

const timestampLayout = "2006-01-02 15:04:05"

// table is a loaded CSV file with name-based column access, so input files
// may carry extra columns in any order.
type table struct {
	name  string
	index map[string]int
	rows  [][]string
}

func readTable(path string, required []string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, analytics.ErrEmptyTable)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", name, analytics.ErrMissingColumn, col)
		}
	}

	return &table{name: name, index: index, rows: records[1:]}, nil
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// writeTable writes header+rows to path via a temp file in the same
// directory followed by a rename.
func writeTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("write header to %s: %w", tmp, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			file.Close()
			os.Remove(tmp)
			return fmt.Errorf("write row to %s: %w", tmp, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

/* ================= cell formatting ================= */

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatTimePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(timestampLayout)
}

/* ================= cell parsing ================= */

// Malformed numeric cells propagate as missing, matching the per-row
// anomaly policy; only structural problems fail a load.

func parseFloatPtr(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(raw string) int {
	v, _ := strconv.Atoi(raw)
	return v
}

func parseFloat(raw string) float64 {
	v, _ := strconv.ParseFloat(raw, 64)
	return v
}

func parseTimePtr(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	ts, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return nil
	}
	return &ts
}

func parseTime(raw string) time.Time {
	ts, _ := time.Parse(timestampLayout, raw)
	return ts
}
