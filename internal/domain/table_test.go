package domain

import "testing"

func TestDropEmptyColumns(t *testing.T) {
	table := Table{
		Columns: []string{"Status", "Vazia", "Cliente"},
		Rows: []Row{
			{"Status": "Aberta", "Vazia": "", "Cliente": "Ana"},
			{"Status": "Fechada", "Vazia": "   ", "Cliente": ""},
		},
	}
	trimmed := table.DropEmptyColumns()
	if len(trimmed.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %v", trimmed.Columns)
	}
	if trimmed.HasColumn("Vazia") {
		t.Fatal("expected the all-blank column to be dropped")
	}
	if !trimmed.HasColumn("Cliente") {
		t.Fatal("expected the partially filled column to stay")
	}
	if len(trimmed.Rows) != 2 {
		t.Fatalf("expected rows preserved, got %d", len(trimmed.Rows))
	}
	// Original table untouched.
	if !table.HasColumn("Vazia") {
		t.Fatal("expected the source table to keep its columns")
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Table{}).IsEmpty() {
		t.Fatal("expected the zero table to be empty")
	}
	table := Table{Columns: []string{"Status"}, Rows: []Row{{"Status": "Aberta"}}}
	if table.IsEmpty() {
		t.Fatal("expected a populated table to be non-empty")
	}
}
