package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/assist-dashboard/internal/classify"
	"github.com/spec-kit/assist-dashboard/internal/domain"
	"github.com/spec-kit/assist-dashboard/internal/events"
)

// Warning codes for the non-fatal render conditions.
const (
	WarningDateFilterSkipped = "DATE_FILTER_SKIPPED"
	WarningEmptyResult       = "EMPTY_RESULT"
)

// Warning is a non-fatal condition surfaced alongside the dashboard.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CountEntry is one bucket of a single-dimension count.
type CountEntry struct {
	Label string
	Count int
}

// PivotEntry is one bucket of the department-by-status count.
type PivotEntry struct {
	Department string
	Status     string
	Count      int
}

// TemporalEntry is one bucket of the per-day, per-status count.
type TemporalEntry struct {
	Date   time.Time
	Status string
	Count  int
}

// RowView pairs a raw table row with its derived values. The raw cells
// are never mutated; derived values live only here.
type RowView struct {
	Cells      domain.Row
	Status     string
	Department string
	Date       time.Time
	HasDate    bool
}

// DashboardResult is everything one render pass derives from an upload
// and a filter selection. It is owned by the request that built it.
type DashboardResult struct {
	Table              domain.Table
	Roles              classify.Roles
	StatusUniverse     []string
	DepartmentUniverse []string
	Selection          domain.FilterSelection
	Filtered           []RowView
	StatusCounts       []CountEntry
	DepartmentCounts   []CountEntry
	PivotCounts        []PivotEntry
	TemporalCounts     []TemporalEntry
	Warnings           []Warning
	GeneratedAt        time.Time
}

// DashboardService runs the normalize, filter and aggregate pipeline.
type DashboardService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(dispatcher events.Dispatcher, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Build runs the full pipeline over a loaded table. The selection's All*
// flags are resolved against the pre-filter universes; an explicitly
// empty set stays empty and yields zero rows.
func (s *DashboardService) Build(ctx context.Context, table domain.Table, selection domain.FilterSelection) (*DashboardResult, error) {
	roles, err := classify.DetectRoles(table.Columns)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows, statusUniverse, departmentUniverse := enrich(table, roles)

	resolved := selection
	if resolved.AllStatuses {
		resolved.Statuses = append([]string{}, statusUniverse...)
	}
	if resolved.AllDepartments {
		resolved.Departments = append([]string{}, departmentUniverse...)
	}

	filtered, warnings := applyFilters(rows, roles, resolved, now)
	result := &DashboardResult{
		Table:              table,
		Roles:              roles,
		StatusUniverse:     statusUniverse,
		DepartmentUniverse: departmentUniverse,
		Selection:          resolved,
		Filtered:           filtered,
		StatusCounts:       statusCounts(filtered),
		DepartmentCounts:   departmentCounts(filtered),
		PivotCounts:        pivotCounts(filtered),
		TemporalCounts:     temporalCounts(filtered),
		Warnings:           warnings,
		GeneratedAt:        now,
	}
	if len(filtered) == 0 {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningEmptyResult,
			Message: "no records match the selected filters",
		})
	}

	s.publishRendered(ctx, result)
	return result, nil
}

func (s *DashboardService) publishRendered(ctx context.Context, result *DashboardResult) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDashboardRendered,
		Timestamp: result.GeneratedAt,
		Payload: events.DashboardRenderedPayload{
			TotalRows:    len(result.Table.Rows),
			FilteredRows: len(result.Filtered),
			Warnings:     len(result.Warnings),
		},
	})
}

// enrich derives per-row status, department and parsed date values plus
// the pre-filter universes of distinct non-empty values.
func enrich(table domain.Table, roles classify.Roles) ([]RowView, []string, []string) {
	rows := make([]RowView, 0, len(table.Rows))
	statusSet := make(map[string]struct{})
	departmentSet := make(map[string]struct{})

	for _, raw := range table.Rows {
		view := RowView{Cells: raw}
		view.Status = trimmed(raw.Cell(roles.Status))
		if view.Status != "" {
			statusSet[view.Status] = struct{}{}
		}

		if roles.HasDepartment() {
			view.Department = trimmed(raw.Cell(roles.Department))
			if view.Department == "" {
				view.Department = domain.DepartmentMissing
			}
			departmentSet[view.Department] = struct{}{}
		} else {
			view.Department = domain.DepartmentAll
		}

		if roles.HasDate() {
			view.Date, view.HasDate = parseDayFirst(trimmed(raw.Cell(roles.Date)))
		}
		rows = append(rows, view)
	}

	statusUniverse := sortedKeys(statusSet)
	var departmentUniverse []string
	if roles.HasDepartment() {
		departmentUniverse = sortedKeys(departmentSet)
	}
	return rows, statusUniverse, departmentUniverse
}
