package ports

import (
	"context"

	"liftdash/domain/survey"
)

// ResponseSource produces the raw survey table from a file or database
type ResponseSource interface {
	// ReadRaw reads every row; a missing source must yield a NOT_FOUND AppError
	ReadRaw(ctx context.Context) (*survey.RawTable, error)

	// Describe names the source for logs and error messages
	Describe() string
}
