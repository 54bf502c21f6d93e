package service

import (
	"sort"
	"time"
)

// statusCounts groups filtered rows by status value, sorted by label.
func statusCounts(rows []RowView) []CountEntry {
	return countBy(rows, func(r RowView) string { return r.Status })
}

// departmentCounts groups filtered rows by department value, sorted by
// label.
func departmentCounts(rows []RowView) []CountEntry {
	return countBy(rows, func(r RowView) string { return r.Department })
}

func countBy(rows []RowView, value func(RowView) string) []CountEntry {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[value(row)]++
	}
	entries := make([]CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })
	return entries
}

// pivotCounts groups filtered rows by (department, status) pairs, sorted
// by department then status.
func pivotCounts(rows []RowView) []PivotEntry {
	type key struct {
		department string
		status     string
	}
	counts := make(map[key]int)
	for _, row := range rows {
		counts[key{row.Department, row.Status}]++
	}
	entries := make([]PivotEntry, 0, len(counts))
	for k, count := range counts {
		entries = append(entries, PivotEntry{Department: k.department, Status: k.status, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Department != entries[j].Department {
			return entries[i].Department < entries[j].Department
		}
		return entries[i].Status < entries[j].Status
	})
	return entries
}

// temporalCounts groups filtered rows by (calendar date, status),
// skipping rows whose date never parsed. Sorted by date then status.
func temporalCounts(rows []RowView) []TemporalEntry {
	type key struct {
		day    time.Time
		status string
	}
	counts := make(map[key]int)
	for _, row := range rows {
		if !row.HasDate {
			continue
		}
		day := row.Date.Truncate(24 * time.Hour)
		counts[key{day, row.Status}]++
	}
	entries := make([]TemporalEntry, 0, len(counts))
	for k, count := range counts {
		entries = append(entries, TemporalEntry{Date: k.day, Status: k.status, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Status < entries[j].Status
	})
	return entries
}
