package compliance

import "docreport/internal/model"

// Score computes the compliance percentage and legend of one contract-period.
//
// The percentage is the sum of relevance weights of conforming documents. Weights are
// normalized upstream to sum to about 1.0 per contract-period and are never re-divided here.
// The critical count is the number of non-conforming documents flagged "1".
func Score(docs []model.DocumentRecord, project string) model.ScoreResult {
	if len(docs) == 0 {
		return model.ScoreResult{Percentage: 0, Legend: model.LegendNoData}
	}

	var perc float64
	critical := 0
	for _, d := range docs {
		if IsConforming(project, d.Status) {
			perc += d.Relevance
		}
		if d.Status == model.StatusNonConforming && d.Critical == "1" {
			critical++
		}
	}

	return model.ScoreResult{
		Percentage: perc,
		Legend:     RulesFor(project).Evaluate(perc, critical),
	}
}

// CountPendencies returns the number of non-conforming documents.
func CountPendencies(docs []model.DocumentRecord) int {
	n := 0
	for _, d := range docs {
		if d.Status == model.StatusNonConforming {
			n++
		}
	}
	return n
}
