package repository

import (
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"docreport/internal/model"
)

type date struct{ y, m, d int }

func (d date) String() string {
	return time.Date(d.y, time.Month(d.m), d.d, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Conforme", "Conforme"},
		{"bytes", []byte("abc"), "abc"},
		{"whole float", 1.0, "1"},
		{"fraction", 0.25, "0.25"},
		{"int64", int64(1), "1"},
		{"int", 0, "0"},
		{"bool", true, "true"},
		{"rat", big.NewRat(1, 4), "0.25"},
		{"nil rat", (*big.Rat)(nil), ""},
		{"time", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), "2025-03-01"},
		{"stringer", date{2025, 2, 1}, "2025-02-01"},
		{"decimal", decimal.RequireFromString("0.125"), "0.125"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 0.3, 0.3},
		{"int64", int64(2), 2},
		{"numeric string", " 0.25 ", 0.25},
		{"non numeric string", "n/a", 0},
		{"empty string", "", 0},
		{"nan string", "NaN", 0},
		{"bytes", []byte("0.5"), 0.5},
		{"rat", big.NewRat(3, 4), 0.75},
		{"decimal", decimal.RequireFromString("0.2"), 0.2},
		{"null decimal", decimal.NullDecimal{}, 0},
		{"valid null decimal", decimal.NewNullDecimal(decimal.RequireFromString("0.4")), 0.4},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Float(tt.in))
		})
	}
}

func TestInt(t *testing.T) {
	assert.Equal(t, 3, Int(int64(3)))
	assert.Equal(t, 2, Int(2.9))
	assert.Equal(t, 4, Int("4"))
	assert.Equal(t, 0, Int(nil))
}

func TestRecordFromRow(t *testing.T) {
	row := Row{
		ColProject:             "Vallourec",
		ColPeriod:              "2025-03",
		ColPeriodDate:          date{2025, 3, 1},
		ColDocument:            "ASO",
		ColProvider:            "Acme",
		ColProviderTaxID:       "12.345.678/0001-90",
		ColContract:            int64(4500),
		ColStatus:              "Não Conforme",
		ColCritical:            int64(1),
		ColRelevance:           "0.15",
		ColApprovalObservation: nil,
		ColRecipientEmails:     "a@x.com;b@x.com",
	}

	got := RecordFromRow(row)

	assert.Equal(t, model.DocumentRecord{
		Project:         "Vallourec",
		Period:          "2025-03",
		PeriodDate:      "2025-03-01",
		Document:        "ASO",
		Provider:        "Acme",
		ProviderTaxID:   "12.345.678/0001-90",
		Contract:        "4500",
		Status:          "Não Conforme",
		Critical:        "1",
		Relevance:       0.15,
		RecipientEmails: "a@x.com;b@x.com",
	}, got)
}

func TestAggregateFromRow(t *testing.T) {
	got := AggregateFromRow(Row{
		ColProject:           "P",
		ColProvider:          "Acme",
		ColContract:          "C-1",
		ColPeriod:            "2025-02",
		ColTotalPendencies:   int64(3),
		ColTotalCritical:     int64(1),
		ColPercentageReached: 0.82,
	})
	assert.Equal(t, model.HistoricalAggregate{
		Project:           "P",
		Provider:          "Acme",
		Contract:          "C-1",
		Period:            "2025-02",
		TotalPendencies:   3,
		TotalCritical:     1,
		PercentageReached: 0.82,
	}, got)
}
