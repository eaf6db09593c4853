package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/bookit/internal/filex"
	"github.com/dmitrijs2005/bookit/internal/logging"
	"github.com/dmitrijs2005/bookit/internal/models"
)

// snapshotData is the on-disk shape of the lightweight session snapshot:
// the sanitized user list, the sanitized current user and the signed
// restore token. It is a cache of the durable store, never a second source
// of truth — Restore rebuilds it from the store after validating the token.
type snapshotData struct {
	Users       []models.User `json:"users"`
	CurrentUser *models.User  `json:"currentUser,omitempty"`
	Token       string        `json:"token,omitempty"`
}

// snapshotStore reads and writes the snapshot file. Writes are best-effort:
// a failure is logged and never blocks the mutation that triggered it.
type snapshotStore struct {
	path string
	log  logging.Logger
}

func newSnapshotStore(path string, log logging.Logger) *snapshotStore {
	return &snapshotStore{path: path, log: log}
}

// save serializes data to the snapshot file, creating the parent directory
// when needed.
func (s *snapshotStore) save(ctx context.Context, data *snapshotData) {
	path, err := filex.EnsureParentDir(s.path)
	if err != nil {
		s.log.Warn(ctx, "failed to prepare snapshot path", "error", err)
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.log.Warn(ctx, "failed to encode snapshot", "error", err)
		return
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		s.log.Warn(ctx, "failed to write snapshot", "error", err)
	}
}

// load reads the snapshot file. A missing file yields (nil, nil); a
// corrupted one yields an error the caller may treat as "no snapshot".
func (s *snapshotStore) load() (*snapshotData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var data snapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// clear removes the snapshot file; a missing file is a no-op.
func (s *snapshotStore) clear(ctx context.Context) {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn(ctx, "failed to clear snapshot", "error", err)
	}
}
