package ingest

import (
	"errors"

	"github.com/2beens/lejogtracker/internal/config"
)

var (
	// ErrConfig is the config package's error, so errors.Is works across both.
	ErrConfig  = config.ErrConfig
	ErrAuth    = errors.New("strava auth error")
	ErrFetch   = errors.New("strava fetch error")
	ErrPersist = errors.New("snapshot persist error")

	ErrSyncInProgress = errors.New("sync already in progress")
)

// ErrorKind maps a sync error to a short label, used for metrics and exit logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfig):
		return "config"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrPersist):
		return "persist"
	case errors.Is(err, ErrSyncInProgress):
		return "in_progress"
	default:
		return "unknown"
	}
}
