package model

// HistoricalAggregate is one warehouse row pre-grouped by (project, provider, contract, period).
type HistoricalAggregate struct {
	Project           string  `json:"PROJETO"`
	Provider          string  `json:"PRESTADOR"`
	Contract          string  `json:"CONTRATO"`
	Period            string  `json:"COMPETENCIA"`
	TotalPendencies   int     `json:"total_pendencias"`
	TotalCritical     int     `json:"total_criticos"`
	PercentageReached float64 `json:"perc_atingido"`
}

// Key returns the contract key of the aggregate.
func (h HistoricalAggregate) Key() ContractKey {
	return ContractKey{Project: h.Project, Provider: h.Provider, Contract: h.Contract}
}

// MonthlyHistoryPoint is one entry of the trailing five-period series of a contract.
type MonthlyHistoryPoint struct {
	Period            string  `json:"COMPETENCIA"`
	TotalPendencies   int     `json:"total_pendencias"`
	TotalCritical     int     `json:"total_criticos"`
	PercentageReached float64 `json:"perc_atingido"`
	Project           string  `json:"PROJETO"`
	Provider          string  `json:"PRESTADOR"`
	Contract          string  `json:"CONTRATO"`
}

// OutOfCoverage reports whether the contract had no activity in the period.
// A contract active but fully non-compliant still has pendencies.
func (p MonthlyHistoryPoint) OutOfCoverage() bool {
	return p.PercentageReached == 0 && p.TotalPendencies == 0
}
