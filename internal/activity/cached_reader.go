package activity

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/2beens/lejogtracker/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour             = 60 * 60
	snapshotCacheExpire = oneHour * 6
	megabyte            = 1024 * 1024

	// freecache rejects entries larger than 1/1024 of its size
	DefaultCacheSizeMB = 50
)

// CachedReader loads the snapshot file through an in-memory cache.
// Cache keys include the file's modification time and size, so a replaced
// snapshot is read from disk again.
type CachedReader struct {
	path  string
	cache *freecache.Cache
}

func NewCachedReader(path string, cacheSizeMB int) *CachedReader {
	if cacheSizeMB <= 0 {
		cacheSizeMB = DefaultCacheSizeMB
	}
	return &CachedReader{
		path:  path,
		cache: freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (r *CachedReader) Load(ctx context.Context) (_ *Snapshot, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "activity.cachedReader.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stat, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, r.path)
		}
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	cacheKey := []byte(fmt.Sprintf("snapshot::%s::%d::%d", r.path, stat.ModTime().UnixNano(), stat.Size()))
	if cached, err := r.cache.Get(cacheKey); err == nil {
		log.Tracef("snapshot [%s] found in cache", r.path)
		return DecodeSnapshot(cached)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, r.path)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snapshot, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(cacheKey, data, snapshotCacheExpire); err != nil {
		log.Warnf("failed to cache snapshot [%s]: %s", r.path, err)
	}

	return snapshot, nil
}

func (r *CachedReader) CachedEntries() int64 {
	return r.cache.EntryCount()
}
