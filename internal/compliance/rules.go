package compliance

import "docreport/internal/model"

// Rule is one row of a project's legend table. Rules are evaluated top to bottom and
// the first matching rule wins, so order encodes precedence.
type Rule struct {
	Name   string
	Match  func(perc float64, critical int) bool
	Legend model.Legend
}

// RuleTable is an ordered legend table. Every table ends with a catch-all so that it is
// total over (perc, critical).
type RuleTable []Rule

// Evaluate returns the legend of the first matching rule.
func (t RuleTable) Evaluate(perc float64, critical int) model.Legend {
	for _, r := range t {
		if r.Match(perc, critical) {
			return r.Legend
		}
	}
	// unreachable for the tables below; each ends with otherwise()
	return model.LegendNoData
}

func below(x float64) func(float64, int) bool {
	return func(p float64, _ int) bool { return p < x }
}

func atMost(x float64) func(float64, int) bool {
	return func(p float64, _ int) bool { return p <= x }
}

func atLeast(x float64) func(float64, int) bool {
	return func(p float64, _ int) bool { return p >= x }
}

func above(x float64) func(float64, int) bool {
	return func(p float64, _ int) bool { return p > x }
}

func within(lo, hi float64) func(float64, int) bool {
	return func(p float64, _ int) bool { return p >= lo && p < hi }
}

func hasCritical(_ float64, critical int) bool { return critical >= 1 }

func otherwise(float64, int) bool { return true }

var vallourecRules = RuleTable{
	{Name: "perc <= 0.9", Match: atMost(0.9), Legend: model.LegendDoesNotMeet},
	{Name: "critical >= 1", Match: hasCritical, Legend: model.LegendDoesNotMeet},
	{Name: "perc > 0.99", Match: above(0.99), Legend: model.LegendMeets},
	{Name: "perc >= 0.9", Match: atLeast(0.9), Legend: model.LegendPartiallyMeets},
	{Name: "otherwise", Match: otherwise, Legend: model.LegendDoesNotMeet},
}

var forestryRules = RuleTable{
	{Name: "perc < 0.5", Match: below(0.5), Legend: model.LegendCritical},
	{Name: "critical >= 1", Match: hasCritical, Legend: model.LegendDoesNotMeet},
	{Name: "perc >= 0.8", Match: atLeast(0.8), Legend: model.LegendMeets},
	{Name: "0.5 <= perc < 0.8", Match: within(0.5, 0.8), Legend: model.LegendDoesNotMeet},
	{Name: "otherwise", Match: otherwise, Legend: model.LegendCritical},
}

var sucuriuRules = RuleTable{
	{Name: "perc <= 0.7", Match: atMost(0.7), Legend: model.LegendCritical},
	{Name: "critical >= 1", Match: hasCritical, Legend: model.LegendDoesNotMeet},
	{Name: "perc >= 0.93", Match: atLeast(0.93), Legend: model.LegendMeets},
	{Name: "0.8 <= perc < 0.93", Match: within(0.8, 0.93), Legend: model.LegendPartiallyMeets},
	{Name: "0.7 <= perc < 0.8", Match: within(0.7, 0.8), Legend: model.LegendLowPerformance},
	{Name: "otherwise", Match: otherwise, Legend: model.LegendDoesNotMeet},
}

// defaultRules ignores the critical count entirely.
var defaultRules = RuleTable{
	{Name: "perc >= 0.99", Match: atLeast(0.99), Legend: model.LegendMeets},
	{Name: "perc <= 0.9", Match: atMost(0.9), Legend: model.LegendCritical},
	{Name: "perc <= 0.96", Match: atMost(0.96), Legend: model.LegendDoesNotMeet},
	{Name: "otherwise", Match: otherwise, Legend: model.LegendPartiallyMeets},
}

var projectRules = map[string]RuleTable{
	"Vallourec":                         vallourecRules,
	"MSFC FLORESTAL LTDA":               forestryRules,
	"BRACELL BAHIA FLORESTAL":           forestryRules,
	"BRACELL BAHIA SPECIALTY CELLULOSE": forestryRules,
	"Projeto Sucuriú":                   sucuriuRules,
}

// RulesFor returns the legend table of a project, falling back to the default table.
func RulesFor(project string) RuleTable {
	if t, ok := projectRules[project]; ok {
		return t
	}
	return defaultRules
}

// strictConformingProjects only count "Conforme" documents; every other project also
// counts documents still under review.
var strictConformingProjects = map[string]struct{}{
	"Reparação Bacia do Rio Doce": {},
	"Samarco - COA":               {},
}

// IsConforming reports whether a document status counts toward the project's percentage.
func IsConforming(project, status string) bool {
	if status == model.StatusConforming {
		return true
	}
	if _, strict := strictConformingProjects[project]; strict {
		return false
	}
	return status == model.StatusUnderReview
}
