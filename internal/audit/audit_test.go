package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()
	require.NotEmpty(t, r.BatchID)

	r.Include()
	r.Include()
	r.Skip(3, ReasonInvalidAmount, "15/07/2025,NOTANUMBER,x,desc")
	r.Exclude(ReasonPending)
	r.FileDone()

	assert.Equal(t, 1, r.FilesProcessed)
	assert.Equal(t, 2, r.RowsIncluded)
	assert.Equal(t, 2, r.RowsExcluded)
	assert.Equal(t, 1, r.Reasons[ReasonInvalidAmount])
	assert.Equal(t, 1, r.Reasons[ReasonPending])

	require.Len(t, r.Skips, 1)
	assert.Equal(t, 3, r.Skips[0].Row)
	assert.Equal(t, ReasonInvalidAmount, r.Skips[0].Reason)
}

func TestRecorder_Merge(t *testing.T) {
	batch := NewRecorder()

	a := NewRecorder()
	a.Include()
	a.Skip(1, ReasonInvalidDate, "bad")
	a.FileDone()

	b := NewRecorder()
	b.Include()
	b.Include()
	b.Exclude(ReasonInvalidDate)
	b.FileDone()

	batch.Merge(a)
	batch.Merge(b)

	assert.Equal(t, 2, batch.FilesProcessed)
	assert.Equal(t, 3, batch.RowsIncluded)
	assert.Equal(t, 2, batch.RowsExcluded)
	assert.Equal(t, 2, batch.Reasons[ReasonInvalidDate])
	assert.Len(t, batch.Skips, 1)
}

func TestRecorder_ReasonSummary(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, "", r.ReasonSummary())

	r.Exclude(ReasonPending)
	r.Exclude(ReasonInvalidAmount)
	r.Exclude(ReasonInvalidAmount)
	assert.Equal(t, "invalid_amount=2;pending=1", r.ReasonSummary())
}

func TestLog_AppendAndRead(t *testing.T) {
	dir := t.TempDir()

	entries := []Entry{
		{
			Timestamp:    time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC),
			BatchID:      "batch-1",
			File:         "NU_123.csv",
			RowsIncluded: 10,
			RowsExcluded: 2,
			Reasons:      "invalid_amount=2",
		},
	}
	require.NoError(t, Append(dir, entries))

	// Second append must not duplicate the header.
	require.NoError(t, Append(dir, entries))

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "NU_123.csv", got[0].File)
	assert.Equal(t, 10, got[0].RowsIncluded)
	assert.Equal(t, "invalid_amount=2", got[1].Reasons)
}

func TestLog_ReadMissing(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}
