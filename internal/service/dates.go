package service

import "time"

// dayFirstLayouts prefer the day-before-month reading: "03/04/2024" is
// 3 April, not March 4th. ISO forms are unambiguous and accepted last.
var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDayFirst parses a cell as a calendar date, day-first when the
// format is ambiguous.
func parseDayFirst(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
