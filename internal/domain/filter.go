package domain

// Period is a relative date window measured in days back from now.
// Zero means the whole period (no date cutoff).
type Period int

const (
	PeriodAll    Period = 0
	PeriodLast7  Period = 7
	PeriodLast15 Period = 15
	PeriodLast30 Period = 30
	PeriodLast90 Period = 90
)

var periodLabels = map[Period]string{
	PeriodAll:    "Todo o período",
	PeriodLast7:  "Últimos 7 dias",
	PeriodLast15: "Últimos 15 dias",
	PeriodLast30: "Últimos 30 dias",
	PeriodLast90: "Últimos 90 dias",
}

// Periods lists the selectable windows in display order.
var Periods = []Period{PeriodAll, PeriodLast7, PeriodLast15, PeriodLast30, PeriodLast90}

// Days returns the window size, or 0 for the whole period.
func (p Period) Days() int { return int(p) }

// Label returns the display label for the window.
func (p Period) Label() string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return periodLabels[PeriodAll]
}

// ParsePeriod maps a request parameter to a Period. Unknown values fall
// back to the whole period.
func ParsePeriod(value string) Period {
	switch value {
	case "7":
		return PeriodLast7
	case "15":
		return PeriodLast15
	case "30":
		return PeriodLast30
	case "90":
		return PeriodLast90
	default:
		return PeriodAll
	}
}

// Department sentinels. Rows with a blank department cell get the missing
// marker; when no department column is detected every row gets the all
// marker and per-department widgets are suppressed.
const (
	DepartmentMissing = "Não especificado"
	DepartmentAll     = "Todos"
)

// FilterSelection is the immutable set of filter criteria for one render.
// It is rebuilt from request input every time; an explicitly empty status
// or department set filters to zero rows, while the All* flags select the
// full universe.
type FilterSelection struct {
	Departments    []string
	AllDepartments bool
	Statuses       []string
	AllStatuses    bool
	Period         Period
	Query          string
}
