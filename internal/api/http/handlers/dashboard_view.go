package handlers

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/assist-dashboard/internal/api/dto"
	"github.com/spec-kit/assist-dashboard/internal/domain"
	"github.com/spec-kit/assist-dashboard/internal/service"
)

const (
	statusCardsPerRow     = 6
	departmentCardsPerRow = 5
	maxDefaultColumns     = 8
)

// relevanceKeywords picks which columns the detail table shows by
// default. Accented and plain spellings are both listed on purpose.
var relevanceKeywords = []string{
	"status", "departamento", "setor", "data", "cliente", "produto", "defeito",
	"tecnico", "observacao", "observação", "modelo", "serie", "número", "telefone",
	"endereço", "endereco", "contato", "razao", "social", "empresa",
}

func buildDashboardResponse(result *service.DashboardResult, sourceName string, refreshSeconds int, visibleColumns []string) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Meta:        buildMeta(result, sourceName, refreshSeconds),
		StatusCards: buildStatusCards(result.StatusCounts),
		Charts:      buildCharts(result),
		Table:       buildTableView(result, visibleColumns),
		Warnings:    buildWarnings(result.Warnings),
	}
	if result.Roles.HasDepartment() {
		resp.DepartmentCards = buildDepartmentCards(result.DepartmentCounts)
	}
	return resp
}

func buildMeta(result *service.DashboardResult, sourceName string, refreshSeconds int) dto.MetaInfo {
	meta := dto.MetaInfo{
		SourceName:     sourceName,
		GeneratedAt:    result.GeneratedAt.Format(time.RFC3339),
		RefreshSeconds: refreshSeconds,
		TotalRows:      len(result.Table.Rows),
		FilteredRows:   len(result.Filtered),
		StatusColumn:   result.Roles.Status,
		StatusOptions:  result.StatusUniverse,
		SelectedPeriod: periodValue(result.Selection.Period),
	}
	if result.Roles.HasDepartment() {
		meta.DepartmentColumn = result.Roles.Department
		meta.DepartmentOptions = result.DepartmentUniverse
	}
	if result.Roles.HasDate() {
		meta.DateColumn = result.Roles.Date
	}
	for _, period := range domain.Periods {
		meta.PeriodOptions = append(meta.PeriodOptions, dto.PeriodOption{
			Value: periodValue(period),
			Label: period.Label(),
		})
	}
	return meta
}

func periodValue(period domain.Period) string {
	if period == domain.PeriodAll {
		return "all"
	}
	return strconv.Itoa(period.Days())
}

func buildStatusCards(counts []service.CountEntry) [][]dto.CardView {
	return chunkCards(counts, statusCardsPerRow, func(entry service.CountEntry, _ int) string {
		return domain.StatusColor(entry.Label)
	})
}

// buildDepartmentCards colors by position within each row, restarting
// the palette every row like the original dashboard.
func buildDepartmentCards(counts []service.CountEntry) [][]dto.CardView {
	return chunkCards(counts, departmentCardsPerRow, func(_ service.CountEntry, posInRow int) string {
		return domain.DepartmentColor(posInRow)
	})
}

func chunkCards(counts []service.CountEntry, perRow int, color func(service.CountEntry, int) string) [][]dto.CardView {
	var rows [][]dto.CardView
	for start := 0; start < len(counts); start += perRow {
		end := start + perRow
		if end > len(counts) {
			end = len(counts)
		}
		row := make([]dto.CardView, 0, end-start)
		for i, entry := range counts[start:end] {
			row = append(row, dto.CardView{
				Label: entry.Label,
				Count: entry.Count,
				Color: color(entry, i),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func buildCharts(result *service.DashboardResult) dto.ChartsView {
	charts := dto.ChartsView{}
	if len(result.StatusCounts) > 0 {
		charts.StatusDonut = donutConfig("Distribuição por Status", result.StatusCounts, func(label string, _ int) string {
			return domain.StatusColor(label)
		})
	}

	multiDepartment := result.Roles.HasDepartment() && len(result.DepartmentCounts) > 1
	if multiDepartment {
		charts.DepartmentDonut = donutConfig("Distribuição por Departamento", result.DepartmentCounts, func(_ string, i int) string {
			return domain.DepartmentColor(i)
		})
		charts.Pivot = pivotConfig(result)
	} else if len(result.StatusCounts) > 0 {
		charts.StatusRanking = rankingConfig(result.StatusCounts)
	}

	if len(result.TemporalCounts) >= 2 {
		charts.Timeline = timelineConfig(result.TemporalCounts)
	}
	return charts
}

func donutConfig(title string, counts []service.CountEntry, color func(string, int) string) *dto.ChartConfig {
	config := &dto.ChartConfig{Type: "donut", Title: title}
	data := make([]float64, 0, len(counts))
	for i, entry := range counts {
		config.Labels = append(config.Labels, entry.Label)
		config.Colors = append(config.Colors, color(entry.Label, i))
		data = append(data, float64(entry.Count))
	}
	config.Series = []dto.SeriesView{{Name: "Quantidade", Data: data}}
	return config
}

func rankingConfig(counts []service.CountEntry) *dto.ChartConfig {
	config := &dto.ChartConfig{Type: "hbar", Title: "Ranking por Status"}
	data := make([]float64, 0, len(counts))
	for _, entry := range counts {
		config.Labels = append(config.Labels, entry.Label)
		config.Colors = append(config.Colors, domain.StatusColor(entry.Label))
		data = append(data, float64(entry.Count))
	}
	config.Series = []dto.SeriesView{{Name: "Quantidade", Data: data}}
	return config
}

// pivotConfig builds the grouped department-by-status bars: one label
// per department, one series per status.
func pivotConfig(result *service.DashboardResult) *dto.ChartConfig {
	if len(result.PivotCounts) == 0 {
		return nil
	}
	departments := make([]string, 0, len(result.DepartmentCounts))
	for _, entry := range result.DepartmentCounts {
		departments = append(departments, entry.Label)
	}
	statuses := make([]string, 0, len(result.StatusCounts))
	for _, entry := range result.StatusCounts {
		statuses = append(statuses, entry.Label)
	}

	counts := make(map[string]map[string]int, len(departments))
	for _, entry := range result.PivotCounts {
		if counts[entry.Status] == nil {
			counts[entry.Status] = make(map[string]int)
		}
		counts[entry.Status][entry.Department] = entry.Count
	}

	config := &dto.ChartConfig{Type: "bar", Title: "Status por Departamento", Labels: departments}
	for _, status := range statuses {
		data := make([]float64, len(departments))
		for i, department := range departments {
			data[i] = float64(counts[status][department])
		}
		config.Series = append(config.Series, dto.SeriesView{
			Name:  status,
			Data:  data,
			Color: domain.StatusColor(status),
		})
	}
	return config
}

func timelineConfig(entries []service.TemporalEntry) *dto.ChartConfig {
	daySet := make(map[string]struct{})
	statusSet := make(map[string]struct{})
	counts := make(map[string]map[string]int)
	for _, entry := range entries {
		day := entry.Date.Format("2006-01-02")
		daySet[day] = struct{}{}
		statusSet[entry.Status] = struct{}{}
		if counts[entry.Status] == nil {
			counts[entry.Status] = make(map[string]int)
		}
		counts[entry.Status][day] = entry.Count
	}

	config := &dto.ChartConfig{Type: "line", Title: "Evolução das Assistências por Dia"}
	config.Labels = sortedStrings(daySet)
	for _, status := range sortedStrings(statusSet) {
		data := make([]float64, len(config.Labels))
		for i, day := range config.Labels {
			data[i] = float64(counts[status][day])
		}
		config.Series = append(config.Series, dto.SeriesView{
			Name:  status,
			Data:  data,
			Color: domain.StatusColor(status),
		})
	}
	return config
}

func buildTableView(result *service.DashboardResult, visibleOverride []string) dto.TableView {
	available := detailColumns(result.Table.Columns)
	visible := filterToAvailable(visibleOverride, available)
	if len(visible) == 0 {
		visible = defaultDetailColumns(available)
	}

	view := dto.TableView{
		Columns:      visible,
		AllColumns:   available,
		StatusColumn: result.Roles.Status,
	}
	view.StatusColors = make(map[string]string, len(result.StatusCounts))
	for _, entry := range result.StatusCounts {
		view.StatusColors[entry.Label] = domain.StatusColor(entry.Label)
	}
	view.Rows = make([]map[string]string, 0, len(result.Filtered))
	for _, row := range result.Filtered {
		cells := make(map[string]string, len(visible))
		for _, col := range visible {
			cells[col] = row.Cells.Cell(col)
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}

// detailColumns keeps columns whose names hit the relevance keyword
// list; when nothing matches, every column stays selectable.
func detailColumns(columns []string) []string {
	relevant := make([]string, 0, len(columns))
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, keyword := range relevanceKeywords {
			if strings.Contains(lower, keyword) {
				relevant = append(relevant, col)
				break
			}
		}
	}
	if len(relevant) == 0 {
		return append([]string{}, columns...)
	}
	return relevant
}

// defaultDetailColumns takes the first eight selectable columns, pinning
// a company-name column first when one exists. The two common spellings
// are checked accent-sensitively, then a lower-cased fallback.
func defaultDetailColumns(available []string) []string {
	defaults := available
	if len(defaults) > maxDefaultColumns {
		defaults = defaults[:maxDefaultColumns]
	}
	defaults = append([]string{}, defaults...)

	pinned := ""
	switch {
	case containsString(available, "Razão Social"):
		pinned = "Razão Social"
	case containsString(available, "Razao Social"):
		pinned = "Razao Social"
	default:
		for _, col := range available {
			if strings.ToLower(col) == "razão social" {
				pinned = col
				break
			}
		}
	}
	if pinned == "" {
		return defaults
	}
	result := []string{pinned}
	for _, col := range defaults {
		if col != pinned {
			result = append(result, col)
		}
	}
	return result
}

func filterToAvailable(requested, available []string) []string {
	if len(requested) == 0 {
		return nil
	}
	kept := make([]string, 0, len(requested))
	for _, col := range requested {
		if containsString(available, col) {
			kept = append(kept, col)
		}
	}
	return kept
}

func buildWarnings(warnings []service.Warning) []dto.WarningView {
	views := make([]dto.WarningView, 0, len(warnings))
	for _, warning := range warnings {
		views = append(views, dto.WarningView{Code: warning.Code, Message: warning.Message})
	}
	return views
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func sortedStrings(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
