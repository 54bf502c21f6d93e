// Package ingest turns uploaded spreadsheet files into domain tables.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/spec-kit/assist-dashboard/internal/domain"
	"github.com/spec-kit/assist-dashboard/internal/events"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

// Loader parses CSV and spreadsheet uploads into tables, caching parse
// results for a short TTL keyed by content hash.
type Loader struct {
	cache      *tableCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLoader constructs a loader with the given cache TTL.
func NewLoader(cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *Loader {
	return &Loader{
		cache:      newTableCache(cacheTTL, time.Now),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Load parses the uploaded bytes according to the filename extension.
// CSV decoding tries UTF-8, Latin-1 and ISO-8859-1 in order; workbooks
// use the first sheet. Fully empty columns are dropped. Failures are
// LoadErrors and abort the render.
func (l *Loader) Load(ctx context.Context, filename string, data []byte) (domain.Table, error) {
	key := contentKey(data)
	if table, ok := l.cache.get(key); ok {
		l.publishLoaded(ctx, filename, table, true)
		return table, nil
	}

	table, err := parseFile(filename, data)
	if err != nil {
		l.publishFailed(ctx, filename, err)
		return domain.Table{}, err
	}
	table = table.DropEmptyColumns()
	if table.IsEmpty() {
		err := apperrors.NewLoadError("the spreadsheet has no usable rows or columns", nil)
		l.publishFailed(ctx, filename, err)
		return domain.Table{}, err
	}

	l.cache.put(key, table)
	l.publishLoaded(ctx, filename, table, false)
	return table, nil
}

// CachedTables reports the number of live cache entries.
func (l *Loader) CachedTables() int {
	return l.cache.len()
}

func (l *Loader) publishLoaded(ctx context.Context, filename string, table domain.Table, cacheHit bool) {
	if l.dispatcher == nil {
		return
	}
	_ = l.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDatasetLoaded,
		Timestamp: time.Now(),
		Payload: events.DatasetLoadedPayload{
			SourceName: filename,
			Rows:       len(table.Rows),
			Columns:    len(table.Columns),
			CacheHit:   cacheHit,
		},
	})
}

func (l *Loader) publishFailed(ctx context.Context, filename string, err error) {
	if l.logger != nil {
		l.logger.Warn("upload rejected", zap.String("filename", filename), zap.Error(err))
	}
	if l.dispatcher == nil {
		return
	}
	_ = l.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoadFailed,
		Timestamp: time.Now(),
		Payload: events.LoadFailedPayload{
			SourceName: filename,
			Reason:     err.Error(),
		},
	})
}

func parseFile(filename string, data []byte) (domain.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(data)
	case ".xlsx":
		return parseWorkbook(data)
	case ".xls":
		return parseLegacyWorkbook(data)
	default:
		return domain.Table{}, apperrors.NewValidationError(
			"unsupported file type, expected .csv, .xlsx or .xls", nil)
	}
}

// csvDecoders are tried in order; the first whose output also parses as
// CSV wins. Latin-1 decoding cannot fail byte-wise, so order matters.
var csvDecoders = []struct {
	name   string
	decode func([]byte) ([]byte, error)
}{
	{"utf-8", decodeUTF8},
	{"latin-1", decodeCharmap(charmap.Windows1252)},
	{"iso-8859-1", decodeCharmap(charmap.ISO8859_1)},
}

func parseCSV(data []byte) (domain.Table, error) {
	var lastErr error
	for _, dec := range csvDecoders {
		decoded, err := dec.decode(data)
		if err != nil {
			lastErr = err
			continue
		}
		table, err := recordsToTable(readCSVRecords(decoded))
		if err != nil {
			lastErr = err
			continue
		}
		return table, nil
	}
	return domain.Table{}, apperrors.NewLoadError("could not parse the CSV file in any supported encoding", lastErr)
}

func readCSVRecords(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(stripBOM(data)))
	return reader.ReadAll()
}

func parseWorkbook(data []byte) (domain.Table, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.Table{}, apperrors.NewLoadError("could not open the workbook", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, apperrors.NewLoadError("the workbook has no sheets", nil)
	}
	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, apperrors.NewLoadError("could not read the first sheet", err)
	}
	return recordsToTable(records, nil)
}

// parseLegacyWorkbook reads the BIFF container of a pre-2007 .xls file,
// first sheet only, like the OOXML path.
func parseLegacyWorkbook(data []byte) (domain.Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return domain.Table{}, apperrors.NewLoadError("could not open the legacy workbook", err)
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return domain.Table{}, apperrors.NewLoadError("the legacy workbook has no sheets", nil)
	}

	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		record := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			record = append(record, row.Col(j))
		}
		records = append(records, record)
	}
	return recordsToTable(records, nil)
}

func recordsToTable(records [][]string, err error) (domain.Table, error) {
	if err != nil {
		return domain.Table{}, err
	}
	if len(records) < 2 {
		return domain.Table{}, fmt.Errorf("need a header row and at least one data row")
	}

	columns := dedupeColumns(records[0])
	rows := make([]domain.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return domain.Table{Columns: columns, Rows: rows}, nil
}

// dedupeColumns trims header names and disambiguates duplicates with a
// numeric suffix, keeping the table's unique-column invariant. The suffix
// is bumped past any literal "X.1"-style header already taken.
func dedupeColumns(header []string) []string {
	columns := make([]string, 0, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("Coluna %d", i+1)
		}
		if _, dup := seen[name]; dup {
			suffix := seen[name]
			fresh := fmt.Sprintf("%s.%d", name, suffix)
			for seen[fresh] > 0 {
				suffix++
				fresh = fmt.Sprintf("%s.%d", name, suffix)
			}
			seen[name] = suffix + 1
			name = fresh
		}
		seen[name] = 1
		columns = append(columns, name)
	}
	return columns
}

func decodeUTF8(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("not valid utf-8")
	}
	return data, nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		return cm.NewDecoder().Bytes(data)
	}
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
