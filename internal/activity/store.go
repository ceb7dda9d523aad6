package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/2beens/lejogtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const snapshotFileMode = 0o644

// FileStore keeps the snapshot as a single JSON file.
// Saves go to a temp file in the same directory which is then renamed over the
// target, so readers see either the old or the new snapshot, never a partial one.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (_ *Snapshot, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "activity.store.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, s.path)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	span.SetAttributes(attribute.Int("snapshot.size", len(data)))

	return DecodeSnapshot(data)
}

func (s *FileStore) Save(ctx context.Context, snapshot *Snapshot) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "activity.store.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if snapshot == nil {
		return errors.New("nil snapshot")
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmpFile.Name()

	renamed := false
	defer func() {
		if renamed {
			return
		}
		if removeErr := os.Remove(tmpPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("remove temp snapshot: %w", removeErr))
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return multierr.Append(
			fmt.Errorf("write temp snapshot: %w", err),
			tmpFile.Close(),
		)
	}
	if err := tmpFile.Sync(); err != nil {
		return multierr.Append(
			fmt.Errorf("sync temp snapshot: %w", err),
			tmpFile.Close(),
		)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Chmod(tmpPath, snapshotFileMode); err != nil {
		return fmt.Errorf("chmod temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	renamed = true

	span.SetAttributes(
		attribute.Int("snapshot.activities", len(snapshot.Activities)),
		attribute.Int("snapshot.size", len(data)),
	)
	log.Debugf("snapshot written to [%s] (%d bytes)", s.path, len(data))

	return nil
}
