package report

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"docreport/internal/model"
)

const byteOrderMark = "\uFEFF"

// PendencyColumns is the header row of the pendency export.
var PendencyColumns = []string{
	"PROJETO", "COMPETENCIA", "DOCUMENTO", "PRESTADOR",
	"CNPJ_PRESTADOR", "CONTRATO", "STATUS_GERAL_Regra",
	"CRITICO", "RELEVANCIA", "DOCUMENTO_APROV_OBS2",
	"DOCUMENTO_APROV_REGULARIZA2",
}

// PendencyCSV writes the historical pendencies of a contract as semicolon separated
// values with a UTF-8 byte order mark. Every value is quoted and embedded quotes are
// doubled. It returns nil when there is nothing to export.
func PendencyCSV(records []model.DocumentRecord) []byte {
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString(byteOrderMark)
	buf.WriteString(strings.Join(PendencyColumns, ";"))
	buf.WriteByte('\n')

	for _, r := range records {
		fields := []string{
			r.Project,
			r.Period,
			r.Document,
			r.Provider,
			r.ProviderTaxID,
			r.Contract,
			r.Status,
			r.Critical,
			formatRelevance(r.Relevance),
			r.ApprovalObservation,
			r.RegularizationNote,
		}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(';')
			}
			buf.WriteString(quote(f))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatRelevance leaves zero weights blank.
func formatRelevance(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PendencyFilename names the export attachment of a contract. Accents are folded and
// any other non alphanumeric character of the provider becomes an underscore.
func PendencyFilename(provider, contract string) string {
	return "pendencias_" + sanitize(provider) + "_" + contract + ".csv"
}

func sanitize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, folded)
}

// Subject is the mail subject of a contract report.
func Subject(provider, contract, period string) string {
	return "[Pendências Docs] " + provider + " | Contrato " + contract + " | " + period
}
