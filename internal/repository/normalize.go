package repository

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"docreport/internal/model"
)

// Row is one loosely typed warehouse row keyed by column name.
type Row map[string]any

// RecordFromRow normalizes a warehouse row into a DocumentRecord. Missing columns
// become zero values and non-numeric relevance becomes 0.
func RecordFromRow(r Row) model.DocumentRecord {
	return model.DocumentRecord{
		Project:             String(r[ColProject]),
		Period:              String(r[ColPeriod]),
		PeriodDate:          String(r[ColPeriodDate]),
		Document:            String(r[ColDocument]),
		Provider:            String(r[ColProvider]),
		ProviderTaxID:       String(r[ColProviderTaxID]),
		Contract:            String(r[ColContract]),
		Status:              String(r[ColStatus]),
		Critical:            String(r[ColCritical]),
		Relevance:           Float(r[ColRelevance]),
		ApprovalObservation: String(r[ColApprovalObservation]),
		RegularizationNote:  String(r[ColRegularizationNote]),
		CompositeKey:        String(r[ColCompositeKey]),
		RecipientEmails:     String(r[ColRecipientEmails]),
	}
}

// AggregateFromRow normalizes a pre-grouped history row.
func AggregateFromRow(r Row) model.HistoricalAggregate {
	return model.HistoricalAggregate{
		Project:           String(r[ColProject]),
		Provider:          String(r[ColProvider]),
		Contract:          String(r[ColContract]),
		Period:            String(r[ColPeriod]),
		TotalPendencies:   Int(r[ColTotalPendencies]),
		TotalCritical:     Int(r[ColTotalCritical]),
		PercentageReached: Float(r[ColPercentageReached]),
	}
}

// String renders a warehouse value as text. Whole floats lose their fraction so a
// critical flag of 1.0 reads "1".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case *big.Rat:
		if x == nil {
			return ""
		}
		f, _ := x.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case time.Time:
		return x.Format(time.DateOnly)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Float parses a warehouse value as a number, yielding 0 for anything non-numeric.
func Float(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case *big.Rat:
		if x == nil {
			return 0
		}
		f, _ := x.Float64()
		return f
	case decimal.Decimal:
		return x.InexactFloat64()
	case decimal.NullDecimal:
		if !x.Valid {
			return 0
		}
		return x.Decimal.InexactFloat64()
	case string:
		return parseFloat(x)
	case []byte:
		return parseFloat(string(x))
	default:
		return 0
	}
}

// Int parses a warehouse count, truncating fractional values.
func Int(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	default:
		return int(Float(v))
	}
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
