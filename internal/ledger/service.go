package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/id"
	"github.com/extrato-dev/extrato/internal/model"
)

var storeEpsilon = decimal.RequireFromString("0.01")

// Service stores validated transactions in monthly CSV files under the repo
// root: <root>/<YYYY>/<MM>/transactions.csv.
type Service struct {
	repoRoot string
	logger   *log.Logger
}

// NewService creates a ledger Service.
func NewService(repoRoot string, logger *log.Logger) *Service {
	return &Service{repoRoot: repoRoot, logger: logger}
}

// Append assigns IDs to the candidates and appends them to their monthly
// files. Candidates that match an already-stored record (same date, trimmed
// description, type, payment method, and amount within a cent) are dropped
// and counted on rec. Returns the stored transactions in input order.
func (s *Service) Append(candidates []model.Candidate, rec *audit.Recorder) ([]model.Transaction, error) {
	existing := make(map[string][]Record) // month key -> records already on disk
	pending := make(map[string][]Record)  // month key -> records to append
	nextSeq := make(map[string]int)

	var stored []model.Transaction
	for _, c := range candidates {
		key := monthKey(c.Date.Year(), int(c.Date.Month()))

		if _, ok := existing[key]; !ok {
			records, err := s.ReadMonth(c.Date.Year(), int(c.Date.Month()))
			if err != nil {
				return nil, err
			}
			existing[key] = records
			nextSeq[key] = nextSeqOf(records)
		}

		if isStoredDuplicate(existing[key], c) || isStoredDuplicate(pending[key], c) {
			s.logger.Debug("duplicate already stored", "date", c.Date.Format(dateFormat), "description", c.Description)
			rec.Exclude(audit.ReasonDuplicateStored)
			continue
		}

		txID := id.FormatID(c.Date.Year(), int(c.Date.Month()), nextSeq[key])
		nextSeq[key]++

		record := Record{Tx: c.Transaction(txID), IncludeInTotals: c.IncludeInTotals}
		pending[key] = append(pending[key], record)
		stored = append(stored, record.Tx)
	}

	for key, records := range pending {
		if err := s.appendMonth(key, records); err != nil {
			return nil, err
		}
	}
	return stored, nil
}

// ReadMonth reads all records for a given year/month. A missing month is
// empty, not an error.
func (s *Service) ReadMonth(year, month int) ([]Record, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return records, nil
}

// Months lists the months with a ledger file, as "YYYY-MM" keys in ascending
// order.
func (s *Service) Months() ([]string, error) {
	var months []string
	yearDirs, err := os.ReadDir(s.repoRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading repo root: %w", err)
	}

	for _, y := range yearDirs {
		if !y.IsDir() || len(y.Name()) != 4 {
			continue
		}
		monthDirs, err := os.ReadDir(filepath.Join(s.repoRoot, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading year dir %s: %w", y.Name(), err)
		}
		for _, m := range monthDirs {
			if !m.IsDir() || len(m.Name()) != 2 {
				continue
			}
			path := filepath.Join(s.repoRoot, y.Name(), m.Name(), "transactions.csv")
			if _, err := os.Stat(path); err == nil {
				months = append(months, y.Name()+"-"+m.Name())
			}
		}
	}
	sort.Strings(months)
	return months, nil
}

func (s *Service) appendMonth(key string, records []Record) error {
	year, month, err := splitMonthKey(key)
	if err != nil {
		return err
	}

	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendRecords(f, records); err != nil {
		return fmt.Errorf("appending records: %w", err)
	}
	return nil
}

// nextSeqOf returns the next available sequence number given a month's
// existing records.
func nextSeqOf(records []Record) int {
	maxSeq := 0
	for _, r := range records {
		_, _, seq, err := id.ParseID(r.Tx.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

func isStoredDuplicate(records []Record, c model.Candidate) bool {
	desc := strings.TrimSpace(c.Description)
	for _, r := range records {
		if r.Tx.Type != c.Type || r.Tx.PaymentMethod != c.PaymentMethod {
			continue
		}
		if !r.Tx.Date.Equal(c.Date) || strings.TrimSpace(r.Tx.Description) != desc {
			continue
		}
		if r.Tx.Amount.Sub(c.Amount).Abs().LessThan(storeEpsilon) {
			return true
		}
	}
	return false
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "transactions.csv")
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func splitMonthKey(key string) (year, month int, err error) {
	y, m, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	year, err = strconv.Atoi(y)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	month, err = strconv.Atoi(m)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return year, month, nil
}
