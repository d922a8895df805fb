// internal/budget/domain.go
package budget

import (
	"fmt"
	"time"

	"recordbook/pkg/recordstore"

	"github.com/shopspring/decimal"
)

// Transaction is one income or expense entry, keyed by its description.
type Transaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IsExpense   bool            `json:"is_expense"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

func (t Transaction) Key() string { return t.Description }

func (t Transaction) Validate() error {
	if err := recordstore.Required("description", t.Description); err != nil {
		return err
	}
	if err := recordstore.Required("category", t.Category); err != nil {
		return err
	}
	if err := recordstore.Storable("description", t.Description); err != nil {
		return err
	}
	return recordstore.Storable("category", t.Category)
}

func (t Transaction) Clone() Transaction { return t }

func (t Transaction) String() string {
	kind := "Income"
	if t.IsExpense {
		kind = "Expense"
	}
	return fmt.Sprintf("%s: %s, Amount: %s, Date: %s, Category: %s",
		kind, t.Description, Money(t.Amount), t.Date.Format("2006-01-02"), t.Category)
}

// signed returns the amount as it affects the balance.
func (t Transaction) signed() decimal.Decimal {
	if t.IsExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Report summarizes every transaction.
type Report struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	Balance            decimal.Decimal
	Count              int
	ExpensesByCategory []recordstore.Group[decimal.Decimal]
}

// MonthlyReport summarizes the transactions dated in one calendar month.
type MonthlyReport struct {
	Month         time.Month
	Year          int
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	Count         int
}

// Money formats an amount as dollars and cents.
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
