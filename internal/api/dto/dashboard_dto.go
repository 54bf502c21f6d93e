package dto

// DashboardResponse is the full payload for one render pass.
type DashboardResponse struct {
	Meta            MetaInfo      `json:"meta"`
	StatusCards     [][]CardView  `json:"status_cards"`
	DepartmentCards [][]CardView  `json:"department_cards,omitempty"`
	Charts          ChartsView    `json:"charts"`
	Table           TableView     `json:"table"`
	Warnings        []WarningView `json:"warnings,omitempty"`
}

// MetaInfo describes the render and the filter options the UI offers.
type MetaInfo struct {
	SourceName        string         `json:"source_name"`
	GeneratedAt       string         `json:"generated_at"`
	RefreshSeconds    int            `json:"refresh_seconds"`
	TotalRows         int            `json:"total_rows"`
	FilteredRows      int            `json:"filtered_rows"`
	StatusColumn      string         `json:"status_column"`
	DepartmentColumn  string         `json:"department_column,omitempty"`
	DateColumn        string         `json:"date_column,omitempty"`
	StatusOptions     []string       `json:"status_options"`
	DepartmentOptions []string       `json:"department_options,omitempty"`
	PeriodOptions     []PeriodOption `json:"period_options"`
	SelectedPeriod    string         `json:"selected_period"`
}

// PeriodOption is one entry of the relative date window selector.
type PeriodOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CardView is one summary card.
type CardView struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// ChartsView bundles the chart configs the page can draw. Nil charts are
// not rendered.
type ChartsView struct {
	StatusDonut     *ChartConfig `json:"status_donut,omitempty"`
	DepartmentDonut *ChartConfig `json:"department_donut,omitempty"`
	StatusRanking   *ChartConfig `json:"status_ranking,omitempty"`
	Pivot           *ChartConfig `json:"pivot,omitempty"`
	Timeline        *ChartConfig `json:"timeline,omitempty"`
}

// ChartConfig carries labels and series for a client-side renderer.
type ChartConfig struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Labels []string     `json:"labels"`
	Series []SeriesView `json:"series"`
	Colors []string     `json:"colors,omitempty"`
}

// SeriesView is one data series of a chart.
type SeriesView struct {
	Name  string    `json:"name"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}

// TableView is the detail table: the visible column set, every
// selectable column, and the rows restricted to visible columns.
type TableView struct {
	Columns      []string            `json:"columns"`
	AllColumns   []string            `json:"all_columns"`
	StatusColumn string              `json:"status_column"`
	StatusColors map[string]string   `json:"status_colors,omitempty"`
	Rows         []map[string]string `json:"rows"`
}

// WarningView surfaces a non-fatal render condition.
type WarningView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
