package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vitos/crypto_market_radar/internal/domain"
)

// SnapshotStore keeps one JSON document per calendar date under a fixed
// directory, named YYYYMMDD.json. Re-running a day overwrites the prior
// file; there is no merge.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// SaveSnapshot writes the document to a temp file and renames it into
// place, so a crashed run never leaves a partial snapshot behind.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap *domain.DailySnapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	name := strings.ReplaceAll(snap.Date, "-", "") + ".json"
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadRecentSnapshots returns up to the most recent `days` snapshots in
// ascending date order. A missing directory means no data. Files that fail
// to parse are skipped, not fatal.
func (s *SnapshotStore) LoadRecentSnapshots(ctx context.Context, days int) ([]domain.DailySnapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isSnapshotName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if days > 0 && len(names) > days {
		names = names[len(names)-days:]
	}

	var snaps []domain.DailySnapshot
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var snap domain.DailySnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// isSnapshotName matches 8-digit date names like 20260828.json.
func isSnapshotName(name string) bool {
	if !strings.HasSuffix(name, ".json") || len(name) != len("20060102.json") {
		return false
	}
	for _, r := range name[:8] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
