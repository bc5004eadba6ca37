package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extrato.yaml")

	cfg := Default("Hugo")
	cfg.Import.GenericIntegerCents = true
	cfg.Corrections = map[string]Correction{
		"2025-07": {Income: 3205.56, Expense: 2947.40, Balance: 258.16},
	}

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Hugo", got.Profile.Name)
	assert.Equal(t, "BRL", got.Profile.Currency)
	assert.Equal(t, "Outros", got.Import.DefaultCategory)
	assert.True(t, got.Import.GenericIntegerCents)
	assert.True(t, got.Git.AutoCommit)

	require.Contains(t, got.Corrections, "2025-07")
	assert.InDelta(t, 3205.56, got.Corrections["2025-07"].Income, 0.001)
	assert.InDelta(t, 258.16, got.Corrections["2025-07"].Balance, 0.001)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "extrato.yaml"))
	assert.Error(t, err)
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extrato.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  name: Hugo\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hugo", got.Profile.Name)
	assert.False(t, got.Import.GenericIntegerCents)
	assert.Empty(t, got.Corrections)
}
