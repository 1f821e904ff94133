// Package fragments provides template path constants for the dashboard pages
package fragments

// Page templates, relative to ui/templates
const (
	Dashboard   = "dashboard.html"
	Unavailable = "unavailable.html"
	ChartNotice = "chart_notice.html"
)

// Pages lists the files parsed at startup
var Pages = []string{Dashboard, Unavailable, ChartNotice}
