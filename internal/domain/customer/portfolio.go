package customer

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	rupee    = "₹"
	lakh     = 100_000
	thousand = 1_000
)

// Portfolio holds the aggregate figures shown on the dashboard.
//
// Sums are plain float64 accumulations of the gateway's decimal strings; no
// rounding is applied until a value is formatted for display.
type Portfolio struct {
	Count               int     `json:"count"`
	TotalOutstanding    float64 `json:"totalOutstanding"`
	TotalEMIDue         float64 `json:"totalEmiDue"`
	AverageInterestRate float64 `json:"averageInterestRate"`
}

func Summarize(customers []Customer) Portfolio {
	p := Portfolio{Count: len(customers)}
	if len(customers) == 0 {
		return p
	}

	var rateSum float64
	for _, c := range customers {
		p.TotalOutstanding += c.Outstanding()
		p.TotalEMIDue += c.EMIDue()
		rateSum += c.Rate()
	}
	p.AverageInterestRate = rateSum / float64(len(customers))
	return p
}

// TotalOutstanding sums outstanding balances only.
func TotalOutstanding(customers []Customer) float64 {
	var total float64
	for _, c := range customers {
		total += c.Outstanding()
	}
	return total
}

// FormatLakhs renders v in lakhs with one decimal, e.g. 250000 -> "₹2.5L".
func FormatLakhs(v float64) string {
	return rupee + oneDecimal(v/lakh) + "L"
}

// FormatThousands renders v in thousands with one decimal, e.g. 4500 -> "₹4.5K".
func FormatThousands(v float64) string {
	return rupee + oneDecimal(v/thousand) + "K"
}

func FormatPercent(v float64) string {
	return oneDecimal(v) + "%"
}

// FormatRupees renders a full amount with Indian digit grouping.
func FormatRupees(v float64) string {
	p := message.NewPrinter(language.MustParse("en-IN"))
	return rupee + p.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func oneDecimal(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
