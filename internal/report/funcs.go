package report

import (
	"html/template"

	"docreport/internal/compliance"
	"docreport/internal/model"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"css":         safeCSS,
		"truncate":    truncate,
		"percent":     compliance.FormatPercent,
		"legendColor": legendColor,
	}
}

// safeCSS marks a palette value as trusted CSS. Only constants and legend colours pass
// through here, never user input.
func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

func legendColor(l model.Legend) template.CSS {
	return template.CSS(compliance.ColorForLegend(l))
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
