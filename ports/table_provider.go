package ports

import (
	"context"
	"time"

	"liftdash/domain/survey"
)

// TableProvider hands out the memoized survey table
type TableProvider interface {
	// Load returns the table, or the load failure, remembered from the first call
	Load(ctx context.Context) (*survey.Table, error)

	// Source describes where the table comes from
	Source() string

	// LoadedAt is zero until the first load finished
	LoadedAt() time.Time
}
