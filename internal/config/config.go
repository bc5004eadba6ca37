package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level extrato.yaml configuration.
type Config struct {
	Profile     Profile               `yaml:"profile"`
	Import      ImportConfig          `yaml:"import"`
	Corrections map[string]Correction `yaml:"corrections,omitempty"`
	Git         GitConfig             `yaml:"git"`
}

// Profile identifies the ledger owner.
type Profile struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// ImportConfig controls parsing policy.
type ImportConfig struct {
	DefaultCategory       string `yaml:"default_category"`
	DefaultIncomeCategory string `yaml:"default_income_category"`

	// GenericIntegerCents treats bare integer amounts in unrecognized CSV
	// files as cents instead of major units. Off by default: the safe
	// reading of an ambiguous file is the literal one.
	GenericIntegerCents bool `yaml:"generic_integer_cents"`
}

// Correction is a manual monthly totals override, keyed by "YYYY-MM" in
// Config.Corrections. Used when a month's source exports are known to be
// incomplete; applied only at summary time, never to stored records.
type Correction struct {
	Income  float64 `yaml:"income"`
	Expense float64 `yaml:"expense"`
	Balance float64 `yaml:"balance"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads an extrato.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(name string) *Config {
	return &Config{
		Profile: Profile{
			Name:     name,
			Currency: "BRL",
		},
		Import: ImportConfig{
			DefaultCategory:       "Outros",
			DefaultIncomeCategory: "Outros Recebimentos",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Extrato",
			AuthorEmail: "ledger@extrato.dev",
		},
	}
}
