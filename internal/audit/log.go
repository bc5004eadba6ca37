package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the audit log: the outcome of processing one source
// file (or one notification) within a batch.
type Entry struct {
	Timestamp    time.Time
	BatchID      string
	File         string
	RowsIncluded int
	RowsExcluded int
	Reasons      string // "reason=n;reason=n"
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,batch_id,file,rows_included,rows_excluded,reasons"

const (
	numFields   = 6
	logDir      = "logs"
	logFile     = "logs/audit-log.csv"
	colTime     = 0
	colBatch    = 1
	colFile     = 2
	colIncluded = 3
	colExcluded = 4
	colReasons  = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colBatch] = e.BatchID
	row[colFile] = e.File
	row[colIncluded] = strconv.Itoa(e.RowsIncluded)
	row[colExcluded] = strconv.Itoa(e.RowsExcluded)
	row[colReasons] = e.Reasons
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	included, err := strconv.Atoi(record[colIncluded])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows_included %q: %w", record[colIncluded], err)
	}

	excluded, err := strconv.Atoi(record[colExcluded])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows_excluded %q: %w", record[colExcluded], err)
	}

	return Entry{
		Timestamp:    ts,
		BatchID:      record[colBatch],
		File:         record[colFile],
		RowsIncluded: included,
		RowsExcluded: excluded,
		Reasons:      record[colReasons],
	}, nil
}

// Append writes entries to <repoRoot>/logs/audit-log.csv, creating the file
// and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/audit-log.csv, or nil if the
// log does not exist yet.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
