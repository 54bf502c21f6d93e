package domain

import "strings"

// statusColors maps well-known Brazilian assistance statuses to card and
// chart colors. Order matters: lookup takes the first entry whose label
// contains the status or is contained by it, case-insensitively. That
// bidirectional containment is intentionally preserved from the original
// dashboard even though short labels can collide.
var statusColors = []struct {
	Label string
	Hex   string
}{
	{"Aberta", "#27ae60"},
	{"Aberto", "#27ae60"},
	{"Pendente", "#f39c12"},
	{"Aguardando", "#f39800"},
	{"Em Análise", "#3498db"},
	{"Análise", "#3498db"},
	{"Recusada", "#e74c3c"},
	{"Recusado", "#e74c3c"},
	{"Negada", "#c0392b"},
	{"Cancelada", "#95a5a6"},
	{"Fechada", "#7f8c8d"},
	{"Concluída", "#16a085"},
	{"Concluida", "#16a085"},
	{"Nova", "#3498db"},
	{"Ativa", "#27ae60"},
	{"Em Andamento", "#f1c40f"},
	{"Reparo", "#9b59b6"},
	{"Teste", "#34495e"},
}

// DefaultStatusColor is used when no table entry matches.
const DefaultStatusColor = "#95a5a6"

// StatusColor resolves the display color for a status label.
func StatusColor(status string) string {
	lower := strings.ToLower(strings.TrimSpace(status))
	for _, entry := range statusColors {
		key := strings.ToLower(entry.Label)
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return entry.Hex
		}
	}
	return DefaultStatusColor
}

// DepartmentPalette is cycled positionally for department cards and
// charts.
var DepartmentPalette = []string{
	"#3498db", "#9b59b6", "#1abc9c", "#f1c40f",
	"#e74c3c", "#34495e", "#16a085", "#2980b9",
}

// DepartmentColor picks the palette color for the given position.
func DepartmentColor(position int) string {
	if position < 0 {
		position = 0
	}
	return DepartmentPalette[position%len(DepartmentPalette)]
}
