package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"docreport/internal/model"
)

func pendencies() []model.DocumentRecord {
	base := model.DocumentRecord{
		Project:       "Projeto X",
		Provider:      "Acme Serviços",
		ProviderTaxID: "12.345.678/0001-90",
		Contract:      "C-1",
	}

	first := base
	first.Period = "2025-01"
	first.Document = "ASO"
	first.Status = model.StatusNonConforming
	first.Critical = "1"
	first.Relevance = 0.25
	first.ApprovalObservation = `He said "hi"`
	first.RegularizationNote = "Enviar até 10/02"

	second := base
	second.Period = "2025-02"
	second.Document = "PPRA"
	second.Status = model.StatusNotSent
	second.Critical = "0"

	return []model.DocumentRecord{first, second}
}

func TestPendencyCSV_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "pendency_csv", PendencyCSV(pendencies()))
}

func TestPendencyCSV(t *testing.T) {
	t.Run("empty yields nil", func(t *testing.T) {
		assert.Nil(t, PendencyCSV(nil))
	})

	t.Run("starts with byte order mark", func(t *testing.T) {
		out := PendencyCSV(pendencies())
		assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	})

	t.Run("doubles embedded quotes", func(t *testing.T) {
		out := string(PendencyCSV(pendencies()))
		assert.Contains(t, out, `"He said ""hi"""`)
	})
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"He said ""hi"""`, quote(`He said "hi"`))
	assert.Equal(t, `""`, quote(""))
	assert.Equal(t, `"a;b"`, quote("a;b"))
}

func TestPendencyFilename(t *testing.T) {
	tests := []struct {
		provider, contract, want string
	}{
		{"Acme Serviços Ltda.", "123", "pendencias_Acme_Servicos_Ltda__123.csv"},
		{"ÁGUA & CIA", "C-9", "pendencias_AGUA___CIA_C-9.csv"},
		{"plain", "1", "pendencias_plain_1.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.Equal(t, tt.want, PendencyFilename(tt.provider, tt.contract))
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "[Pendências Docs] Acme | Contrato 42 | 2025-09", Subject("Acme", "42", "2025-09"))
}
