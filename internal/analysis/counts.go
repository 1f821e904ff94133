// Package analysis holds the pure aggregations behind the dashboard.
// Every function takes a (possibly filtered) table and never mutates it.
package analysis

import (
	"sort"

	"liftdash/domain/survey"
	"liftdash/internal/errors"
)

// ErrEmptyView is returned by aggregations that are undefined on zero rows
var ErrEmptyView = errors.ValidationError("empty view")

// Count is one category and how many rows carry it
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Counts is a frequency table; Missing rows had no value for the column
type Counts struct {
	Items   []Count `json:"items"`
	Missing int     `json:"missing"`
}

// Total is the number of rows the counts were taken over
func (c Counts) Total() int {
	total := c.Missing
	for _, item := range c.Items {
		total += item.Count
	}
	return total
}

// Labels returns the category names in order
func (c Counts) Labels() []string {
	out := make([]string, len(c.Items))
	for i, item := range c.Items {
		out[i] = item.Value
	}
	return out
}

// Values returns the counts in order
func (c Counts) Values() []int {
	out := make([]int, len(c.Items))
	for i, item := range c.Items {
		out[i] = item.Count
	}
	return out
}

// Ascending returns a copy sorted by count ascending, ties keeping their order
func (c Counts) Ascending() Counts {
	items := make([]Count, len(c.Items))
	copy(items, c.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count < items[j].Count })
	return Counts{Items: items, Missing: c.Missing}
}

// ValueCounts counts the non-missing values of col, most frequent first.
// Ties keep first-appearance order.
func ValueCounts(view *survey.Table, col survey.Column) Counts {
	counts, order, missing := tally(view, col)

	items := make([]Count, len(order))
	for i, v := range order {
		items[i] = Count{Value: v, Count: counts[v]}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	return Counts{Items: items, Missing: missing}
}

// ValueCountsOrdered reindexes the counts of col to a canonical category order.
// Absent categories count zero; values outside the order are dropped.
func ValueCountsOrdered(view *survey.Table, col survey.Column, order []string) Counts {
	counts, _, missing := tally(view, col)

	items := make([]Count, len(order))
	for i, v := range order {
		items[i] = Count{Value: v, Count: counts[v]}
	}
	return Counts{Items: items, Missing: missing}
}

// Mode returns the most frequent non-missing value of col; ties go to the value seen first
func Mode(view *survey.Table, col survey.Column) (string, error) {
	counts, order, _ := tally(view, col)
	if len(order) == 0 {
		return "", ErrEmptyView
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, nil
}

// Percentage is the share of rows matching pred, in [0, 100]
func Percentage(view *survey.Table, pred func(survey.Response) bool) (float64, error) {
	n := view.Len()
	if n == 0 {
		return 0, ErrEmptyView
	}
	matched := 0
	for i := 0; i < n; i++ {
		if pred(view.Row(i)) {
			matched++
		}
	}
	return float64(matched) / float64(n) * 100, nil
}

// DissatisfactionRate is the share of respondents who disagree that there are enough lifts
func DissatisfactionRate(view *survey.Table) (float64, error) {
	return Percentage(view, func(r survey.Response) bool {
		for _, answer := range survey.DissatisfiedAnswers {
			if r.Adequacy == answer {
				return true
			}
		}
		return false
	})
}

// RegroupIndicators melts cols into (category, answer) pairs, keeps the pairs whose
// answer equals value and counts them per category. Categories are renamed through
// names, zero counts are omitted and the result is sorted by count ascending.
func RegroupIndicators(view *survey.Table, cols []survey.Column, value string, names map[survey.Column]string) Counts {
	items := make([]Count, 0, len(cols))
	for _, col := range cols {
		n := 0
		for i := 0; i < view.Len(); i++ {
			if v, ok := view.Row(i).Label(col); ok && v == value {
				n++
			}
		}
		if n == 0 {
			continue
		}
		name, ok := names[col]
		if !ok {
			name = string(col)
		}
		items = append(items, Count{Value: name, Count: n})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count < items[j].Count })
	return Counts{Items: items}
}

// ExperienceFrequency counts respondents who "often" had each negative lift experience
func ExperienceFrequency(view *survey.Table) Counts {
	return RegroupIndicators(view, survey.ExperienceColumns, survey.OftenAnswer, survey.ExperienceNames)
}

func tally(view *survey.Table, col survey.Column) (map[string]int, []string, int) {
	counts := make(map[string]int)
	var order []string
	missing := 0
	for i := 0; i < view.Len(); i++ {
		v, ok := view.Row(i).Label(col)
		if !ok {
			missing++
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	return counts, order, missing
}
