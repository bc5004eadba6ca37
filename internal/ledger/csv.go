package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/extrato-dev/extrato/internal/model"
)

// Record is one stored ledger row: a validated transaction plus its
// aggregation flag. Invoice rows are stored but excluded from totals.
type Record struct {
	Tx              model.Transaction
	IncludeInTotals bool
}

// Header is the CSV header for transactions.csv.
const Header = "id,date,description,category,payment_method,amount,type,status,include_in_totals"

const (
	numFields  = 9
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colDesc    = 2
	colCat     = 3
	colMethod  = 4
	colAmount  = 5
	colType    = 6
	colStatus  = 7
	colInclude = 8
)

// ReadRecords reads all records from a transactions.csv reader.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var out []Record
	for i, rec := range records[1:] {
		lr, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, lr)
	}
	return out, nil
}

// AppendRecords appends records to an existing transactions.csv writer (no
// header).
func AppendRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row ([]string).
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colID] = r.Tx.ID
	row[colDate] = r.Tx.Date.Format(dateFormat)
	row[colDesc] = r.Tx.Description
	row[colCat] = r.Tx.Category
	row[colMethod] = r.Tx.PaymentMethod
	row[colAmount] = r.Tx.Amount.StringFixed(2)
	row[colType] = string(r.Tx.Type)
	row[colStatus] = string(r.Tx.Status)
	row[colInclude] = strconv.FormatBool(r.IncludeInTotals)
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(record []string) (Record, error) {
	if len(record) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Record{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Record{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	include, err := strconv.ParseBool(record[colInclude])
	if err != nil {
		return Record{}, fmt.Errorf("parsing include_in_totals %q: %w", record[colInclude], err)
	}

	typ := model.Type(record[colType])
	if typ != model.TypeIncome && typ != model.TypeExpense {
		return Record{}, fmt.Errorf("invalid type %q", record[colType])
	}

	return Record{
		Tx: model.Transaction{
			ID:            record[colID],
			Date:          date,
			Description:   record[colDesc],
			Category:      record[colCat],
			PaymentMethod: record[colMethod],
			Amount:        amount,
			Type:          typ,
			Status:        model.Status(record[colStatus]),
		},
		IncludeInTotals: include,
	}, nil
}
