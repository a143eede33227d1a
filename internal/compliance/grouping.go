package compliance

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"docreport/internal/model"
)

// ContractGroup holds the records of one (project, provider, contract) key for a period.
type ContractGroup struct {
	Key     model.ContractKey
	Records []model.DocumentRecord
}

// GroupByContract partitions records by contract key. Groups appear in the order their
// key was first seen and keep their records in input order. Missing key fields group
// under the empty string.
func GroupByContract(records []model.DocumentRecord) []ContractGroup {
	index := make(map[model.ContractKey]int)
	groups := make([]ContractGroup, 0)
	for _, r := range records {
		k := r.Key()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ContractGroup{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// FilterContract returns the records belonging to key, preserving order.
func FilterContract(records []model.DocumentRecord, key model.ContractKey) []model.DocumentRecord {
	out := make([]model.DocumentRecord, 0)
	for _, r := range records {
		if r.Key() == key {
			out = append(out, r)
		}
	}
	return out
}

// ParseRecipients splits a semicolon/comma delimited address list, trimming blanks.
func ParseRecipients(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContractsForSending scores every group of the period and keeps the ones whose first
// record carries recipients. The result is ordered by provider using pt-BR collation.
func ContractsForSending(period string, records []model.DocumentRecord) []model.ContractForSending {
	contracts := make([]model.ContractForSending, 0)
	for _, g := range GroupByContract(records) {
		emails := g.Records[0].RecipientEmails
		if strings.TrimSpace(emails) == "" {
			continue
		}
		score := Score(g.Records, g.Key.Project)
		contracts = append(contracts, model.ContractForSending{
			Project:         g.Key.Project,
			Provider:        g.Key.Provider,
			Contract:        g.Key.Contract,
			Period:          period,
			RecipientEmails: emails,
			TotalDocuments:  len(g.Records),
			TotalPendencies: CountPendencies(g.Records),
			Percentage:      score.Percentage,
			Legend:          score.Legend,
		})
	}

	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(contracts, func(i, j int) bool {
		return col.CompareString(contracts[i].Provider, contracts[j].Provider) < 0
	})
	return contracts
}
