package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatID(t *testing.T) {
	assert.Equal(t, "2025-07-001", FormatID(2025, 7, 1))
	assert.Equal(t, "2025-12-042", FormatID(2025, 12, 42))
	assert.Equal(t, "2025-01-1000", FormatID(2025, 1, 1000))
}

func TestParseID(t *testing.T) {
	year, month, seq, err := ParseID("2025-07-001")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, month)
	assert.Equal(t, 1, seq)
}

func TestParseID_RoundTrip(t *testing.T) {
	year, month, seq, err := ParseID(FormatID(2025, 3, 17))
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 17, seq)
}

func TestParseID_Invalid(t *testing.T) {
	for _, bad := range []string{"", "2025", "2025-07", "abcd-ef-ghi"} {
		_, _, _, err := ParseID(bad)
		assert.Error(t, err, "id %q", bad)
	}
}
