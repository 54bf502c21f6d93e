// Package classify guesses which uploaded-spreadsheet columns carry the
// ticket status, the owning department, and the opening date. Detection
// looks at column names only, never at cell values.
package classify

import (
	"strings"

	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

// Roles holds the detected column for each role. Status is mandatory;
// Department and Date degrade gracefully when absent.
type Roles struct {
	Status     string
	Department string
	Date       string
}

// HasDepartment reports whether a department column was detected.
func (r Roles) HasDepartment() bool { return r.Department != "" }

// HasDate reports whether a date column was detected.
func (r Roles) HasDate() bool { return r.Date != "" }

var statusKeywords = []string{"status", "situacao", "situacão", "estado"}

var departmentKeywords = []string{
	"departamento", "setor", "area", "área", "dept", "unidade", "equipe", "time",
}

var dateKeywords = []string{"data", "dt_", "abertura", "entrada", "registro"}

// DetectRoles assigns column roles by keyword matching on normalized
// column names. The earliest matching column wins each role; a single
// column may fill more than one role.
func DetectRoles(columns []string) (Roles, error) {
	roles := Roles{
		Status:     firstMatch(columns, statusKeywords, normalizeName),
		Department: firstMatch(columns, departmentKeywords, normalizeName),
		Date:       firstMatch(columns, dateKeywords, lowerName),
	}
	if roles.Status == "" {
		return Roles{}, apperrors.NewConfigurationError(
			"no status column found, check the spreadsheet column names",
			map[string]any{"available_columns": append([]string{}, columns...)},
		)
	}
	return roles, nil
}

func firstMatch(columns, keywords []string, normalize func(string) string) string {
	for _, col := range columns {
		name := normalize(col)
		for _, keyword := range keywords {
			if strings.Contains(name, keyword) {
				return col
			}
		}
	}
	return ""
}

// normalizeName lower-cases and substitutes the cedilla and tilde vowels
// that show up in Portuguese column headers. Deliberately not a full
// diacritic strip: "área" keeps its accent, which is why the keyword
// lists carry both spellings.
func normalizeName(col string) string {
	name := lowerName(col)
	name = strings.ReplaceAll(name, "ç", "c")
	name = strings.ReplaceAll(name, "ã", "a")
	name = strings.ReplaceAll(name, "õ", "o")
	return name
}

func lowerName(col string) string {
	return strings.ToLower(strings.TrimSpace(col))
}
