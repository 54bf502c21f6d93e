package service

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/assist-dashboard/internal/events"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

// Exported derived-column names, appended after the original columns so
// a re-import keeps every original value intact.
const (
	exportStatusColumn     = "status_normalizado"
	exportDepartmentColumn = "departamento_normalizado"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportFilename stamps the download name with the current date/time.
func ExportFilename(now time.Time) string {
	return "assistencia_" + now.Format("20060102_1504") + ".csv"
}

// ExportCSV writes the filtered table as UTF-8 CSV with a byte-order
// mark, original columns first and the derived columns appended.
// Returns the stamped filename.
func (s *DashboardService) ExportCSV(ctx context.Context, result *DashboardResult, w io.Writer) (string, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	writer := csv.NewWriter(w)
	header := append(append([]string{}, result.Table.Columns...), exportStatusColumn, exportDepartmentColumn)
	if err := writer.Write(header); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	for _, row := range result.Filtered {
		record := make([]string, 0, len(header))
		for _, col := range result.Table.Columns {
			record = append(record, row.Cells.Cell(col))
		}
		record = append(record, row.Status, row.Department)
		if err := writer.Write(record); err != nil {
			return "", apperrors.NewInternalError(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	filename := ExportFilename(s.now())
	s.publishExported(ctx, filename, len(result.Filtered))
	return filename, nil
}

func (s *DashboardService) publishExported(ctx context.Context, filename string, rows int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventExportGenerated,
		Timestamp: s.now(),
		Payload: events.ExportGeneratedPayload{
			Filename: filename,
			Rows:     rows,
		},
	})
}
