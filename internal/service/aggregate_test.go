package service

import (
	"testing"
	"time"
)

func viewRows() []RowView {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	return []RowView{
		{Status: "Aberta", Department: "TI", Date: day(1), HasDate: true},
		{Status: "Aberta", Department: "TI", Date: day(2), HasDate: true},
		{Status: "Pendente", Department: "TI", Date: day(1), HasDate: true},
		{Status: "Aberta", Department: "RH", Date: day(2), HasDate: true},
		{Status: "Concluída", Department: "RH", HasDate: false},
	}
}

func TestStatusCountsSorted(t *testing.T) {
	counts := statusCounts(viewRows())
	if len(counts) != 3 {
		t.Fatalf("expected 3 buckets, got %+v", counts)
	}
	want := []CountEntry{{"Aberta", 3}, {"Concluída", 1}, {"Pendente", 1}}
	for i, entry := range want {
		if counts[i] != entry {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, entry, counts[i])
		}
	}
}

func TestPivotCountsSortedByDepartmentThenStatus(t *testing.T) {
	pivot := pivotCounts(viewRows())
	want := []PivotEntry{
		{"RH", "Aberta", 1},
		{"RH", "Concluída", 1},
		{"TI", "Aberta", 2},
		{"TI", "Pendente", 1},
	}
	if len(pivot) != len(want) {
		t.Fatalf("expected %d buckets, got %+v", len(want), pivot)
	}
	for i, entry := range want {
		if pivot[i] != entry {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, entry, pivot[i])
		}
	}
}

func TestTemporalCountsSkipUndatedRows(t *testing.T) {
	temporal := temporalCounts(viewRows())
	// 5 rows, one without a parsed date, grouped as (day, status).
	if len(temporal) != 3 {
		t.Fatalf("expected 3 buckets, got %+v", temporal)
	}
	total := 0
	for _, entry := range temporal {
		total += entry.Count
	}
	if total != 4 {
		t.Fatalf("expected 4 dated rows counted, got %d", total)
	}
	if !temporal[0].Date.Before(temporal[len(temporal)-1].Date) && !temporal[0].Date.Equal(temporal[len(temporal)-1].Date) {
		t.Fatal("expected buckets ordered by date")
	}
}

func TestCountsOnEmptyInput(t *testing.T) {
	if got := statusCounts(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %+v", got)
	}
	if got := pivotCounts(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %+v", got)
	}
	if got := temporalCounts(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %+v", got)
	}
}
