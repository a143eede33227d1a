package compliance

import "docreport/internal/model"

// fallbackColor is used for anything outside the legend enumeration.
const fallbackColor = "#6B7280"

var legendColors = map[model.Legend]string{
	model.LegendMeets:          "#16A34A",
	model.LegendPartiallyMeets: "#FACC15",
	model.LegendDoesNotMeet:    "#DC2626",
	model.LegendCritical:       "#7F1D1D",
	model.LegendLowPerformance: "#F97316",
	model.LegendNoData:         "#6B7280",
	model.LegendOutOfCoverage:  "#9CA3AF",
}

// ColorForLegend returns the display color of a legend.
func ColorForLegend(l model.Legend) string {
	if c, ok := legendColors[l]; ok {
		return c
	}
	return fallbackColor
}
