package model

// DocumentRecord is one compliance check for one document of one contract in one period.
// Values are normalized at the repository boundary; the rest of the pipeline never sees
// the warehouse's loose typing.
type DocumentRecord struct {
	Project             string  `json:"PROJETO"`
	Period              string  `json:"COMPETENCIA"`
	PeriodDate          string  `json:"Competencia_Data"`
	Document            string  `json:"DOCUMENTO"`
	Provider            string  `json:"PRESTADOR"`
	ProviderTaxID       string  `json:"CNPJ_PRESTADOR"`
	Contract            string  `json:"CONTRATO"`
	Status              string  `json:"STATUS_GERAL_Regra"`
	Critical            string  `json:"CRITICO"`
	Relevance           float64 `json:"RELEVANCIA"`
	ApprovalObservation string  `json:"DOCUMENTO_APROV_OBS2"`
	RegularizationNote  string  `json:"DOCUMENTO_APROV_REGULARIZA2"`
	CompositeKey        string  `json:"Chave_Composta"`
	RecipientEmails     string  `json:"email_envio"`
}

// Key returns the (project, provider, contract) grouping key of the record.
func (d DocumentRecord) Key() ContractKey {
	return ContractKey{Project: d.Project, Provider: d.Provider, Contract: d.Contract}
}

// Overall document statuses as they arrive from the warehouse.
const (
	StatusConforming    = "Conforme"
	StatusNonConforming = "Não Conforme"
	StatusUnderReview   = "Em Análise"
	StatusNotSent       = "Não Enviado"
)

// ContractKey identifies a contract group.
type ContractKey struct {
	Project  string `json:"projeto"`
	Provider string `json:"prestador"`
	Contract string `json:"contrato"`
}
