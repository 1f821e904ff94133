package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"liftdash/domain/survey"
)

// ToTable validates a raw table and converts it to typed responses
func ToTable(raw *survey.RawTable) (*survey.Table, error) {
	if raw == nil {
		return nil, fmt.Errorf("no data")
	}

	present := make(map[string]bool, len(raw.Headers))
	var numericColumns []string
	for _, h := range raw.Headers {
		if present[h] {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		present[h] = true
		if survey.IsNumericColumn(h) {
			numericColumns = append(numericColumns, h)
		}
	}

	var missing []string
	for _, col := range survey.RequiredColumns {
		if !present[string(col)] {
			missing = append(missing, string(col))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	rows := make([]survey.Response, 0, len(raw.Rows))
	for i, rr := range raw.Rows {
		// +2: one for the header, one for 1-based line numbers
		line := i + 2
		resp, err := toResponse(rr, numericColumns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		rows = append(rows, resp)
	}

	return survey.NewTable(rows, numericColumns), nil
}

func toResponse(rr survey.RawRow, numericColumns []string) (survey.Response, error) {
	get := func(c survey.Column) string { return rr[string(c)] }

	resp := survey.Response{
		Faculty:            get(survey.ColFaculty),
		Program:            get(survey.ColProgram),
		Suggestion:         get(survey.ColSuggestion),
		Adequacy:           get(survey.ColAdequacy),
		Cause:              get(survey.ColCause),
		SuggestionCategory: get(survey.ColSuggestionCategory),
		UsageFrequency:     get(survey.ColUsageFrequency),
		WaitTime:           get(survey.ColWaitTime),
		EnterBeforeExit:    get(survey.ColEnterBeforeExit),
		QueueJumping:       get(survey.ColQueueJumping),
		Discomfort:         get(survey.ColDiscomfort),
		Lateness:           get(survey.ColLateness),
		Obstacle:           get(survey.ColObstacle),
		Numeric:            make(map[string]float64, len(numericColumns)),
	}
	// cells are kept verbatim; a blank faculty still counts as missing
	if strings.TrimSpace(resp.Faculty) == "" {
		return resp, fmt.Errorf("%s is empty", survey.ColFaculty)
	}

	for _, col := range numericColumns {
		v, err := parseNumber(rr[col])
		if err != nil {
			return resp, fmt.Errorf("%s: %w", col, err)
		}
		resp.Numeric[col] = v
	}
	return resp, nil
}

// parseNumber reads a numeric cell; blank and NaN markers become NaN
func parseNumber(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}
