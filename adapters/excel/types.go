package excel

import "liftdash/domain/survey"

// ExcelData represents the complete spreadsheet or CSV dataset
type ExcelData = survey.RawTable

// RawRowData represents a row of raw data as string key-value pairs
type RawRowData = survey.RawRow
