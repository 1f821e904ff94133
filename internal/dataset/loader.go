package dataset

import (
	"context"
	"sync"
	"time"

	"liftdash/domain/survey"
	"liftdash/internal"
	"liftdash/internal/errors"
	"liftdash/ports"

	"golang.org/x/sync/singleflight"
)

// Loader reads the survey table once and serves the same immutable table afterwards
type Loader struct {
	source ports.ResponseSource
	logger *internal.Logger

	group singleflight.Group

	mu       sync.RWMutex
	done     bool
	table    *survey.Table
	err      error
	loadedAt time.Time
}

// NewLoader creates a loader over the given source
func NewLoader(source ports.ResponseSource, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{source: source, logger: logger.With("source", source.Describe())}
}

// Load returns the memoized table or the memoized load failure.
// NOT_FOUND means the source is missing; SOURCE_UNREADABLE covers the rest.
func (l *Loader) Load(ctx context.Context) (*survey.Table, error) {
	l.mu.RLock()
	if l.done {
		table, err := l.table, l.err
		l.mu.RUnlock()
		return table, err
	}
	l.mu.RUnlock()

	_, _, _ = l.group.Do("load", func() (interface{}, error) {
		l.mu.RLock()
		done := l.done
		l.mu.RUnlock()
		if done {
			return nil, nil
		}

		// the outcome is shared; detach it from the caller's cancellation
		table, err := l.read(context.WithoutCancel(ctx))

		l.mu.Lock()
		l.done = true
		l.table = table
		l.err = err
		l.loadedAt = time.Now()
		l.mu.Unlock()
		return nil, nil
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.table, l.err
}

// LoadedAt reports when the table was read; zero before the first load
func (l *Loader) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedAt
}

// Source describes where the table comes from
func (l *Loader) Source() string {
	return l.source.Describe()
}

func (l *Loader) read(ctx context.Context) (*survey.Table, error) {
	start := time.Now()
	l.logger.Info("[Loader] Reading survey responses from %s", l.source.Describe())

	raw, err := l.source.ReadRaw(ctx)
	if err != nil {
		l.logger.Error("[Loader] FAILED - %v", err)
		if !errors.IsAppError(err) {
			err = errors.WithCode(errors.CodeSourceUnreadable, err)
		}
		return nil, errors.Wrapf(err, "failed to load survey data from %s", l.source.Describe())
	}

	table, err := ToTable(raw)
	if err != nil {
		l.logger.Error("[Loader] FAILED - invalid survey table: %v", err)
		return nil, errors.Wrapf(errors.WithCode(errors.CodeSourceUnreadable, err),
			"failed to load survey data from %s", l.source.Describe())
	}

	l.logger.Info("[Loader] Loaded %d responses (%d numeric columns) in %s",
		table.Len(), len(table.NumericColumns()), time.Since(start).Round(time.Millisecond))
	return table, nil
}
