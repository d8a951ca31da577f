package livexg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/richard-senior/livexg/internal/logger"
	_ "modernc.org/sqlite"
)

// ErrPresetNotFound is returned when no preset has the requested name
var ErrPresetNotFound = errors.New("league preset not found")

// LeaguePreset calibrates the engine for one league without code changes.
// Zero valued fields leave the corresponding input or policy untouched.
type LeaguePreset struct {
	Name                 string        `json:"name"`
	AverageGoalsPerMatch float64       `json:"average_goals"`
	NeutralConversion    float64       `json:"neutral_conversion,omitempty"`
	HomeAdvantage        float64       `json:"home_advantage,omitempty"`
	ScorelineTier        ScorelineTier `json:"scoreline_tier,omitempty"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// Validate checks a preset before it is stored
func (p *LeaguePreset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if p.AverageGoalsPerMatch <= 0 {
		return fmt.Errorf("preset %s: average goals must be positive, got: %f", p.Name, p.AverageGoalsPerMatch)
	}
	if p.NeutralConversion < 0 || p.HomeAdvantage < 0 {
		return fmt.Errorf("preset %s: conversion and home advantage must not be negative", p.Name)
	}
	switch p.ScorelineTier {
	case TierHard, TierSoft, TierNone, "":
	default:
		return fmt.Errorf("preset %s: %w: %q", p.Name, ErrUnknownTier, p.ScorelineTier)
	}
	return nil
}

// ApplyPreset copies the preset calibration onto an input and returns the
// configuration to evaluate it with. The passed config is not modified.
func ApplyPreset(in *Input, config *LivexgConfig, preset *LeaguePreset) *LivexgConfig {
	cfg := config.clone()
	if preset == nil {
		return cfg
	}
	if preset.AverageGoalsPerMatch > 0 {
		in.League.AverageGoalsPerMatch = preset.AverageGoalsPerMatch
	}
	if preset.NeutralConversion > 0 {
		cfg.NeutralConversion = preset.NeutralConversion
	}
	if preset.HomeAdvantage > 0 {
		in.Policy.HomeAdvantage = preset.HomeAdvantage
	}
	if preset.ScorelineTier != "" {
		in.Policy.ScorelineTier = preset.ScorelineTier
	}
	return cfg
}

// PresetStore persists league presets in a sqlite database
type PresetStore struct {
	db *sql.DB
}

const createPresetTableSQL = `CREATE TABLE IF NOT EXISTS league_presets (
	name TEXT NOT NULL,
	average_goals REAL NOT NULL,
	neutral_conversion REAL NOT NULL DEFAULT 0,
	home_advantage REAL NOT NULL DEFAULT 0,
	scoreline_tier TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (name)
)`

// OpenPresetStore opens (creating if needed) the preset database at path.
// ":memory:" gives a private in-memory store.
func OpenPresetStore(path string) (*PresetStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection to :memory: would be a different database
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err = db.Exec(createPresetTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table league_presets: %w", err)
	}

	logger.Info("Preset database initialized successfully", path)
	return &PresetStore{db: db}, nil
}

// Close closes the database connection
func (s *PresetStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts or replaces a preset by name
func (s *PresetStore) Save(p *LeaguePreset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO league_presets
		(name, average_goals, neutral_conversion, home_advantage, scoreline_tier, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		normalisePresetName(p.Name), p.AverageGoalsPerMatch, p.NeutralConversion,
		p.HomeAdvantage, string(p.ScorelineTier), p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save preset %s: %w", p.Name, err)
	}
	logger.Debug("Saved league preset", p.Name)
	return nil
}

// Get returns the preset with the given name
func (s *PresetStore) Get(name string) (*LeaguePreset, error) {
	row := s.db.QueryRow(`SELECT name, average_goals, neutral_conversion, home_advantage, scoreline_tier, updated_at
		FROM league_presets WHERE name = ?`, normalisePresetName(name))

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %s: %w", name, err)
	}
	return p, nil
}

// List returns all presets ordered by name
func (s *PresetStore) List() ([]*LeaguePreset, error) {
	rows, err := s.db.Query(`SELECT name, average_goals, neutral_conversion, home_advantage, scoreline_tier, updated_at
		FROM league_presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []*LeaguePreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// Delete removes a preset, returning ErrPresetNotFound if there was none
func (s *PresetStore) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM league_presets WHERE name = ?`, normalisePresetName(name))
	if err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*LeaguePreset, error) {
	var (
		p       LeaguePreset
		tier    string
		updated int64
	)
	if err := row.Scan(&p.Name, &p.AverageGoalsPerMatch, &p.NeutralConversion, &p.HomeAdvantage, &tier, &updated); err != nil {
		return nil, err
	}
	p.ScorelineTier = ScorelineTier(tier)
	p.UpdatedAt = time.Unix(updated, 0).UTC()
	return &p, nil
}

func normalisePresetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
