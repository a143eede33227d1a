package model

// Legend is the categorical compliance status label.
type Legend string

const (
	LegendMeets          Legend = "Atende"
	LegendPartiallyMeets Legend = "Atende Parcial"
	LegendDoesNotMeet    Legend = "Não Atende"
	LegendCritical       Legend = "Crítico"
	LegendLowPerformance Legend = "Baixa Performance"
	LegendNoData         Legend = "Sem dados"
	LegendOutOfCoverage  Legend = "Fora da Vigência"
)

// ScoreResult is the compliance percentage (0..1) and legend of a contract for one period.
type ScoreResult struct {
	Percentage float64 `json:"percentual"`
	Legend     Legend  `json:"legenda"`
}
