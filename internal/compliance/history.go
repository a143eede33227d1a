package compliance

import (
	"fmt"
	"strconv"
	"strings"

	"docreport/internal/model"
)

// BuildHistory produces the five-period series of a contract, oldest first, ending at
// period. Aggregates are matched by period prefix since stored periods may carry a
// suffix; periods without an aggregate get zero totals.
func BuildHistory(period string, key model.ContractKey, aggregates []model.HistoricalAggregate) ([]model.MonthlyHistoryPoint, error) {
	periods, err := LastPeriods(period)
	if err != nil {
		return nil, err
	}

	own := make([]model.HistoricalAggregate, 0)
	for _, a := range aggregates {
		if a.Key() == key {
			own = append(own, a)
		}
	}

	series := make([]model.MonthlyHistoryPoint, 0, len(periods))
	for _, p := range periods {
		point := model.MonthlyHistoryPoint{
			Period:   p,
			Project:  key.Project,
			Provider: key.Provider,
			Contract: key.Contract,
		}
		for _, a := range own {
			if strings.HasPrefix(a.Period, p) {
				point.TotalPendencies = a.TotalPendencies
				point.TotalCritical = a.TotalCritical
				point.PercentageReached = a.PercentageReached
				break
			}
		}
		series = append(series, point)
	}
	return series, nil
}

// HistoryRow is the display form of one history point.
type HistoryRow struct {
	Period        string
	Percentage    string
	Legend        model.Legend
	Color         string
	OutOfCoverage bool
}

// DescribeHistory turns a series into display rows. Out of coverage periods show a dash
// and the "Fora da Vigência" legend; the rest go through the project's legend table via
// legendProxy.
func DescribeHistory(series []model.MonthlyHistoryPoint, project string) []HistoryRow {
	rows := make([]HistoryRow, 0, len(series))
	for _, p := range series {
		if p.OutOfCoverage() {
			rows = append(rows, HistoryRow{
				Period:        p.Period,
				Percentage:    "-",
				Legend:        model.LegendOutOfCoverage,
				Color:         ColorForLegend(model.LegendOutOfCoverage),
				OutOfCoverage: true,
			})
			continue
		}
		legend := Score([]model.DocumentRecord{legendProxy(p, project)}, project).Legend
		rows = append(rows, HistoryRow{
			Period:     p.Period,
			Percentage: FormatPercent(p.PercentageReached),
			Legend:     legend,
			Color:      ColorForLegend(legend),
		})
	}
	return rows
}

// legendProxy builds a single synthetic document standing in for a whole historical
// period. It only exists so history rows reuse the same legend tables as the current
// period for display; it is not a second scoring of real data.
//
// The proxy is "Conforme" only when the period reached 0.99, so any lower period is
// scored as if nothing conformed. Its critical flag is the period's critical total,
// which only matches "1" when exactly one critical pendency exists.
func legendProxy(p model.MonthlyHistoryPoint, project string) model.DocumentRecord {
	status := model.StatusNonConforming
	if p.PercentageReached >= 0.99 {
		status = model.StatusConforming
	}
	return model.DocumentRecord{
		Project:   project,
		Period:    p.Period,
		Status:    status,
		Critical:  strconv.Itoa(p.TotalCritical),
		Relevance: p.PercentageReached,
	}
}

// FormatPercent renders a 0..1 fraction with one decimal place, e.g. 0.8 -> "80.0%".
func FormatPercent(perc float64) string {
	return fmt.Sprintf("%.1f%%", perc*100)
}
