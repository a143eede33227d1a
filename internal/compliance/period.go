package compliance

import (
	"fmt"
	"regexp"
	"strconv"
)

// HistoryWindow is the number of periods in a contract's trailing history.
const HistoryWindow = 5

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidPeriod reports whether p has the YYYY-MM shape accepted at every boundary.
func ValidPeriod(p string) bool {
	return periodPattern.MatchString(p)
}

// LastPeriods returns the HistoryWindow periods ending at ref, oldest first.
// Month arithmetic wraps across year boundaries.
func LastPeriods(ref string) ([]string, error) {
	if !ValidPeriod(ref) {
		return nil, fmt.Errorf("invalid period %q: expected YYYY-MM", ref)
	}
	year, _ := strconv.Atoi(ref[:4])
	month, _ := strconv.Atoi(ref[5:])

	out := make([]string, 0, HistoryWindow)
	for i := HistoryWindow - 1; i >= 0; i-- {
		m, y := month-i, year
		for m <= 0 {
			m += 12
			y--
		}
		out = append(out, fmt.Sprintf("%d-%02d", y, m))
	}
	return out, nil
}
