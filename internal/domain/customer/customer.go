package customer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Customer is a loan account as returned by the gateway. Monetary and rate
// fields stay decimal strings, exactly as served.
type Customer struct {
	ID                 int64  `json:"id"`
	AccountNumber      string `json:"account_number"`
	Name               string `json:"customer_name"`
	IssueDate          string `json:"issue_date"`
	InterestRate       string `json:"interest_rate"`
	TenureMonths       int    `json:"tenure_months"`
	EMIDueAmount       string `json:"emi_due_amount"`
	OutstandingBalance string `json:"outstanding_balance"`
}

func (c Customer) Outstanding() float64 {
	return ParseAmount(c.OutstandingBalance)
}

func (c Customer) EMIDue() float64 {
	return ParseAmount(c.EMIDueAmount)
}

func (c Customer) Rate() float64 {
	return ParseAmount(c.InterestRate)
}

// ParseAmount reads a gateway decimal string as a float. Unparsable input reads as 0.
func ParseAmount(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// FindByAccountNumber scans customers for an exact account number match.
func FindByAccountNumber(customers []Customer, accountNumber string) (Customer, bool) {
	for _, c := range customers {
		if c.AccountNumber == accountNumber {
			return c, true
		}
	}
	return Customer{}, false
}
