package model

// ContractForSending is the consult projection of one contract group for a period.
type ContractForSending struct {
	Project         string  `json:"projeto"`
	Provider        string  `json:"prestador"`
	Contract        string  `json:"contrato"`
	Period          string  `json:"competencia"`
	RecipientEmails string  `json:"email_envio"`
	TotalDocuments  int     `json:"total_documentos"`
	TotalPendencies int     `json:"total_pendencias"`
	Percentage      float64 `json:"perc_atingido"`
	Legend          Legend  `json:"legenda"`
	Selected        bool    `json:"selecionado"`
}

// Dispatch is one contract report to send.
type Dispatch struct {
	Project  string   `json:"projeto" validate:"required"`
	Provider string   `json:"prestador" validate:"required"`
	Contract string   `json:"contrato" validate:"required"`
	Period   string   `json:"competencia" validate:"required,period"`
	Emails   []string `json:"emails"`
}

// Key returns the contract key of the dispatch.
func (d Dispatch) Key() ContractKey {
	return ContractKey{Project: d.Project, Provider: d.Provider, Contract: d.Contract}
}

// DispatchResult records a successful send.
type DispatchResult struct {
	Provider   string   `json:"prestador"`
	Contract   string   `json:"contrato"`
	Emails     []string `json:"emails"`
	Status     string   `json:"status"`
	ArchiveKey string   `json:"arquivo,omitempty"`
}

// DispatchError records a per-contract failure inside a batch.
type DispatchError struct {
	Provider string `json:"prestador"`
	Contract string `json:"contrato"`
	Reason   string `json:"erro"`
}

// BatchResult aggregates a batch send. The batch itself succeeds even when every contract fails.
type BatchResult struct {
	Success    bool             `json:"success"`
	TotalSent  int              `json:"total_enviados"`
	TotalFails int              `json:"total_erros"`
	Results    []DispatchResult `json:"resultados"`
	Errors     []DispatchError  `json:"erros"`
}
