package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/assist-dashboard/internal/events"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

func newTestLoader() *Loader {
	return NewLoader(15*time.Second, nil, zap.NewNop())
}

func TestLoadCSVUTF8(t *testing.T) {
	data := []byte("Status,Setor,Cliente\nAberta,TI,Ana\nConcluída,RH,Bruno\n")
	table, err := newTestLoader().Load(context.Background(), "chamados.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 3 || len(table.Rows) != 2 {
		t.Fatalf("unexpected shape: %d columns, %d rows", len(table.Columns), len(table.Rows))
	}
	if table.Rows[1].Cell("Status") != "Concluída" {
		t.Fatalf("expected accented cell to survive, got %q", table.Rows[1].Cell("Status"))
	}
}

func TestLoadCSVLatin1(t *testing.T) {
	// "Concluída" and "Situação" encoded as Latin-1.
	data := []byte("Situa\xe7\xe3o,Cliente\nConclu\xedda,Ana\n")
	table, err := newTestLoader().Load(context.Background(), "chamados.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Columns[0] != "Situação" {
		t.Fatalf("expected decoded header, got %q", table.Columns[0])
	}
	if table.Rows[0].Cell("Situação") != "Concluída" {
		t.Fatalf("expected decoded cell, got %q", table.Rows[0].Cell("Situação"))
	}
}

func TestLoadCSVDropsEmptyColumns(t *testing.T) {
	data := []byte("Status,Vazia,Cliente\nAberta,,Ana\nFechada, ,Bruno\n")
	table, err := newTestLoader().Load(context.Background(), "chamados.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.HasColumn("Vazia") {
		t.Fatal("expected the all-blank column to be dropped")
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), "chamados.csv", []byte("Status,Cliente\n"))
	assertCode(t, err, "LOAD_FAILED")
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), "chamados.txt", []byte("Status\nAberta\n"))
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestLoadBrokenWorkbook(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), "chamados.xlsx", []byte("not a workbook"))
	assertCode(t, err, "LOAD_FAILED")
}

func TestLoadXLSXFirstSheet(t *testing.T) {
	workbook := excelize.NewFile()
	defer workbook.Close()
	rows := [][]interface{}{
		{"Status", "Setor", "Cliente"},
		{"Aberta", "TI", "Ana"},
		{"Pendente", "RH", "Bruno"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := workbook.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	table, err := newTestLoader().Load(context.Background(), "chamados.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].Cell("Setor") != "TI" {
		t.Fatalf("unexpected cell: %q", table.Rows[0].Cell("Setor"))
	}
}

func TestLoadBrokenLegacyWorkbook(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), "chamados.xls", []byte("not a workbook"))
	assertCode(t, err, "LOAD_FAILED")
	if !strings.Contains(err.Error(), "legacy workbook") {
		t.Fatalf("expected the legacy workbook path, got %v", err)
	}
}

func TestLoadDuplicateHeaders(t *testing.T) {
	data := []byte("Status,Status,Cliente\nAberta,Fechada,Ana\n")
	table, err := newTestLoader().Load(context.Background(), "chamados.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Columns[0] == table.Columns[1] {
		t.Fatalf("expected disambiguated headers, got %v", table.Columns)
	}
}

func TestDedupeColumnsSkipsTakenSuffix(t *testing.T) {
	got := dedupeColumns([]string{"Status", "Status.1", "Status", "Status"})
	want := []string{"Status", "Status.1", "Status.2", "Status.3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLoadPublishesCacheHit(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var hits []bool
	dispatcher.Subscribe(events.EventDatasetLoaded, func(_ context.Context, event events.Event) error {
		payload := event.Payload.(events.DatasetLoadedPayload)
		hits = append(hits, payload.CacheHit)
		return nil
	})
	loader := NewLoader(15*time.Second, dispatcher, zap.NewNop())

	data := []byte("Status,Cliente\nAberta,Ana\n")
	for i := 0; i < 2; i++ {
		if _, err := loader.Load(context.Background(), "chamados.csv", data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(hits) != 2 || hits[0] || !hits[1] {
		t.Fatalf("expected a miss then a hit, got %v", hits)
	}
	if loader.CachedTables() != 1 {
		t.Fatalf("expected one cached table, got %d", loader.CachedTables())
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected a DomainError, got %T", err)
	}
	if domainErr.Code != code {
		t.Fatalf("expected code %q, got %q", code, domainErr.Code)
	}
}
