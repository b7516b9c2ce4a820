package legilux

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SeedStore persists one JSON artifact per fetched act under a directory.
type SeedStore struct {
	dir string
}

// NewSeedStore creates the seed directory if needed.
func NewSeedStore(dir string) (*SeedStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create seed directory: %w", err)
	}
	return &SeedStore{dir: dir}, nil
}

// Dir returns the seed directory path.
func (s *SeedStore) Dir() string { return s.dir }

func (s *SeedStore) path(seedID string) string {
	return filepath.Join(s.dir, seedID+".json")
}

// Exists reports whether an artifact for the seed ID is already on disk.
func (s *SeedStore) Exists(seedID string) bool {
	info, err := os.Stat(s.path(seedID))
	return err == nil && info.Size() > 0
}

// Write stores one seed artifact atomically (write to a temp file, then
// rename).
func (s *SeedStore) Write(seed Seed) error {
	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seed %s: %w", seed.ID, err)
	}
	tempPath := s.path(seed.ID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write seed %s: %w", seed.ID, err)
	}
	if err := os.Rename(tempPath, s.path(seed.ID)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("finalize seed %s: %w", seed.ID, err)
	}
	return nil
}

// Read loads one seed artifact by ID.
func (s *SeedStore) Read(seedID string) (*Seed, error) {
	data, err := os.ReadFile(s.path(seedID))
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", seedID, err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", seedID, err)
	}
	return &seed, nil
}

// List returns the IDs of all stored seeds in sorted order.
func (s *SeedStore) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(match), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// FetchAll retrieves the XML body for every discovered entry and stores a
// seed artifact per act. Entries whose artifact already exists are skipped
// unless overwrite is set, so interrupted runs resume without re-fetching.
// Individual failures are counted and skipped, never retried within the
// run; re-running with overwrite is the retry mechanism.
func FetchAll(ctx context.Context, fetcher *Fetcher, seeds *SeedStore, entries []LawIndexEntry, overwrite bool, logger *zap.Logger) (*FetchReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	report := &FetchReport{Attempted: len(entries)}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		seedID := SeedID(entry.URI)
		if !overwrite && seeds.Exists(seedID) {
			report.Skipped++
			continue
		}

		body, err := fetcher.FetchXML(ctx, entry)
		if err != nil {
			return report, err
		}
		if body == nil {
			report.Failed++
			if len(report.FailedIDs) < maxFailedSamples {
				report.FailedIDs = append(report.FailedIDs, seedID)
			}
			continue
		}

		seed := Seed{
			ID:        seedID,
			Entry:     entry,
			XML:       string(body),
			FetchedAt: time.Now().UTC(),
		}
		if err := seeds.Write(seed); err != nil {
			return report, err
		}
		report.Fetched++
	}

	logger.Info("fetch complete",
		zap.Int("attempted", report.Attempted),
		zap.Int("fetched", report.Fetched),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}
