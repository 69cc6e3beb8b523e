package driver

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"keel/internal/diagfmt"
)

// SnapshotVersion guards the wire layout of exported snapshots. Bump when
// the layout changes incompatibly.
const SnapshotVersion = 1

// FileSnapshot is the resolved scope tree of one checked file.
type FileSnapshot struct {
	Path        string            `msgpack:"path"`
	Diagnostics int               `msgpack:"diagnostics"`
	Scopes      diagfmt.ScopeJSON `msgpack:"scopes"`
}

// Snapshot is the exportable result of a whole check run.
type Snapshot struct {
	Version int            `msgpack:"version"`
	Files   []FileSnapshot `msgpack:"files"`
}

// BuildSnapshot collects the scope trees of all successfully resolved files.
func BuildSnapshot(results []*CheckResult) Snapshot {
	snap := Snapshot{Version: SnapshotVersion}
	for _, res := range results {
		if res == nil || res.Sema == nil {
			continue
		}
		snap.Files = append(snap.Files, FileSnapshot{
			Path:        res.File.Path,
			Diagnostics: res.Bag.Len(),
			Scopes:      diagfmt.BuildScopeTree(res.Sema, res.Builder),
		})
	}
	return snap
}

// WriteSnapshot serializes the snapshot to path with msgpack.
func WriteSnapshot(path string, snap Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot and rejects
// incompatible versions.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}
