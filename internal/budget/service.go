// internal/budget/service.go
package budget

import (
	"context"
	"time"

	"recordbook/pkg/recordstore"

	"github.com/shopspring/decimal"
)

// Service defines the interface for the budgeting service.
type Service interface {
	AddTransaction(ctx context.Context, description string, amount decimal.Decimal, isExpense bool, category string) (*Transaction, error)
	EditTransaction(ctx context.Context, description string, amount decimal.Decimal, isExpense bool, category string) (*Transaction, error)
	DeleteTransaction(ctx context.Context, description string) error
	Transactions() []Transaction
	ByCategory(category string) []Transaction
	ByDateRange(start, end time.Time) []Transaction
	ByAmountRange(lo, hi decimal.Decimal) []Transaction
	Search(term string) []Transaction
	Categories() []string
	TotalIncome() decimal.Decimal
	TotalExpenses() decimal.Decimal
	Balance() decimal.Decimal
	Report() Report
	MonthlyReport(month time.Month, year int) (*MonthlyReport, error)
	Save(ctx context.Context, path string) error
	Load(ctx context.Context, path string) (recordstore.LoadResult, error)
}
