package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"liftdash/domain/survey"
	"liftdash/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// undefinedTable is the SQLSTATE postgres returns for a missing relation
const undefinedTable = "42P01"

// ResponseReader reads the survey table from PostgreSQL, read-only
type ResponseReader struct {
	db    *sqlx.DB
	table string
}

// NewResponseReader creates a reader over an already validated table name
func NewResponseReader(db *sqlx.DB, table string) *ResponseReader {
	return &ResponseReader{db: db, table: table}
}

// Connect opens and pings the database
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.SourceUnreadable("database", err)
	}
	return db, nil
}

// Describe names the table being read
func (r *ResponseReader) Describe() string {
	return "postgres table " + r.table
}

// ReadRaw implements ports.ResponseSource
func (r *ResponseReader) ReadRaw(ctx context.Context) (*survey.RawTable, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteQualified(r.table))

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == undefinedTable {
			return nil, errors.NotFound(r.Describe())
		}
		return nil, errors.SourceUnreadable(r.Describe(), err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, errors.SourceUnreadable(r.Describe(), err)
	}

	table := &survey.RawTable{Headers: headers}
	for rows.Next() {
		record := make(map[string]interface{}, len(headers))
		if err := rows.MapScan(record); err != nil {
			return nil, errors.SourceUnreadable(r.Describe(), fmt.Errorf("failed to scan row: %w", err))
		}
		raw := make(survey.RawRow, len(record))
		for k, v := range record {
			raw[k] = cellText(v)
		}
		table.Rows = append(table.Rows, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.SourceUnreadable(r.Describe(), err)
	}

	return table, nil
}

// quoteQualified quotes schema.table for use in a statement
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// cellText renders a scanned value the way it would appear in the CSV export
func cellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
