package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/assist-dashboard/internal/classify"
	"github.com/spec-kit/assist-dashboard/internal/domain"
)

// applyFilters narrows rows through the four predicates in fixed order:
// department set, status set, date window, free text. Each step only
// removes rows; output order follows input order.
func applyFilters(rows []RowView, roles classify.Roles, sel domain.FilterSelection, now time.Time) ([]RowView, []Warning) {
	var warnings []Warning

	if roles.HasDepartment() {
		rows = filterBySet(rows, sel.Departments, func(r RowView) string { return r.Department })
	}
	rows = filterBySet(rows, sel.Statuses, func(r RowView) string { return r.Status })

	if roles.HasDate() && sel.Period != domain.PeriodAll {
		filtered, ok := filterByWindow(rows, sel.Period, now)
		if ok {
			rows = filtered
		} else {
			warnings = append(warnings, Warning{
				Code:    WarningDateFilterSkipped,
				Message: fmt.Sprintf("could not parse any value in the %q column, date filter skipped", roles.Date),
			})
		}
	}

	if sel.Query != "" {
		rows = filterByQuery(rows, sel.Query)
	}
	return rows, warnings
}

// filterBySet keeps rows whose value is in the allowed set. An empty set
// keeps nothing: explicitly deselecting everything means zero rows, not
// "no filter".
func filterBySet(rows []RowView, allowed []string, value func(RowView) string) []RowView {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = struct{}{}
	}
	kept := make([]RowView, 0, len(rows))
	for _, row := range rows {
		if _, ok := allowedSet[value(row)]; ok {
			kept = append(kept, row)
		}
	}
	return kept
}

// filterByWindow keeps rows whose parsed date falls within the last N
// days. Rows whose date failed to parse are removed entirely. When no
// row at all parsed, the step reports failure so the caller can degrade
// to a warning and skip it.
func filterByWindow(rows []RowView, period domain.Period, now time.Time) ([]RowView, bool) {
	if len(rows) > 0 && !anyParsedDate(rows) {
		return nil, false
	}
	cutoff := now.AddDate(0, 0, -period.Days())
	kept := make([]RowView, 0, len(rows))
	for _, row := range rows {
		if row.HasDate && !row.Date.Before(cutoff) {
			kept = append(kept, row)
		}
	}
	return kept, true
}

func anyParsedDate(rows []RowView) bool {
	for _, row := range rows {
		if row.HasDate {
			return true
		}
	}
	return false
}

// filterByQuery keeps rows where the query is a case-insensitive
// substring of any cell, including the derived status and department
// values.
func filterByQuery(rows []RowView, query string) []RowView {
	needle := strings.ToLower(query)
	kept := make([]RowView, 0, len(rows))
	for _, row := range rows {
		if rowMatches(row, needle) {
			kept = append(kept, row)
		}
	}
	return kept
}

func rowMatches(row RowView, needle string) bool {
	for _, cell := range row.Cells {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(row.Status), needle) ||
		strings.Contains(strings.ToLower(row.Department), needle)
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
