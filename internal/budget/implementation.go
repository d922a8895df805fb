// internal/budget/implementation.go
package budget

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"recordbook/pkg/recordstore"

	"github.com/shopspring/decimal"
)

// service implements the Service interface.
type service struct {
	transactions *recordstore.Store[Transaction]
	logger       *slog.Logger
	now          func() time.Time
}

// NewService creates a new budgeting service with an empty ledger.
func NewService(logger *slog.Logger, opts ...recordstore.Option) Service {
	opts = append([]recordstore.Option{
		recordstore.WithName("transactions"),
		recordstore.WithLogger(logger),
	}, opts...)
	return &service{
		transactions: recordstore.New[Transaction](opts...),
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// AddTransaction records a new transaction dated now.
func (s *service) AddTransaction(ctx context.Context, description string, amount decimal.Decimal, isExpense bool, category string) (*Transaction, error) {
	t := Transaction{
		Description: description,
		Amount:      amount,
		IsExpense:   isExpense,
		Category:    category,
		Date:        s.now(),
	}
	if err := s.transactions.Add(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// EditTransaction replaces the first transaction with a matching description.
// The description and date are kept; the edited transaction moves to the end of the ledger.
func (s *service) EditTransaction(ctx context.Context, description string, amount decimal.Decimal, isExpense bool, category string) (*Transaction, error) {
	updated, ok, err := s.transactions.UpdateByKey(ctx, description, func(old Transaction) (Transaction, error) {
		return Transaction{
			Description: old.Description,
			Amount:      amount,
			IsExpense:   isExpense,
			Category:    category,
			Date:        old.Date,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no transaction found with description %q: %w", description, recordstore.ErrNotFound)
	}
	return &updated, nil
}

// DeleteTransaction removes the first transaction with a matching description.
func (s *service) DeleteTransaction(ctx context.Context, description string) error {
	if _, ok := s.transactions.DeleteByKey(ctx, description); !ok {
		return fmt.Errorf("no transaction found with description %q: %w", description, recordstore.ErrNotFound)
	}
	return nil
}

func (s *service) Transactions() []Transaction {
	return s.transactions.All()
}

func (s *service) ByCategory(category string) []Transaction {
	return s.filter(func(t Transaction) bool {
		return recordstore.EqualFold(t.Category, category)
	})
}

func (s *service) ByDateRange(start, end time.Time) []Transaction {
	return s.filter(func(t Transaction) bool {
		return recordstore.TimeInRange(t.Date, start, end)
	})
}

func (s *service) ByAmountRange(lo, hi decimal.Decimal) []Transaction {
	return s.filter(func(t Transaction) bool {
		return t.Amount.GreaterThanOrEqual(lo) && t.Amount.LessThanOrEqual(hi)
	})
}

// Search matches the term anywhere in the description, ignoring case.
func (s *service) Search(term string) []Transaction {
	return s.filter(func(t Transaction) bool {
		return recordstore.ContainsFold(t.Description, term)
	})
}

// Categories lists each category once, in order of first use.
func (s *service) Categories() []string {
	return recordstore.Distinct(s.transactions.FindAll(nil), func(t Transaction) string { return t.Category })
}

func (s *service) TotalIncome() decimal.Decimal {
	return total(s.transactions.FindAll(isIncome))
}

func (s *service) TotalExpenses() decimal.Decimal {
	return total(s.transactions.FindAll(isExpense))
}

// Balance is total income minus total expenses.
func (s *service) Balance() decimal.Decimal {
	return recordstore.Aggregate(s.transactions.FindAll(nil), decimal.Zero, func(acc decimal.Decimal, t Transaction) decimal.Decimal {
		return acc.Add(t.signed())
	})
}

func (s *service) Report() Report {
	return Report{
		TotalIncome:   s.TotalIncome(),
		TotalExpenses: s.TotalExpenses(),
		Balance:       s.Balance(),
		Count:         s.transactions.Len(),
		ExpensesByCategory: recordstore.GroupBy(s.transactions.FindAll(isExpense),
			func(t Transaction) string { return t.Category },
			func(acc decimal.Decimal, t Transaction) decimal.Decimal { return acc.Add(t.Amount) },
		),
	}
}

// MonthlyReport summarizes one calendar month. A month without transactions is not found.
func (s *service) MonthlyReport(month time.Month, year int) (*MonthlyReport, error) {
	inMonth := func(t Transaction) bool {
		return t.Date.Month() == month && t.Date.Year() == year
	}
	count := recordstore.Count(s.transactions.FindAll(inMonth))
	if count == 0 {
		return nil, fmt.Errorf("no transactions for %s %d: %w", month, year, recordstore.ErrNotFound)
	}

	income := total(s.transactions.FindAll(func(t Transaction) bool { return inMonth(t) && !t.IsExpense }))
	expenses := total(s.transactions.FindAll(func(t Transaction) bool { return inMonth(t) && t.IsExpense }))
	return &MonthlyReport{
		Month:         month,
		Year:          year,
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
		Count:         count,
	}, nil
}

// Save overwrites path with the full ledger.
func (s *service) Save(ctx context.Context, path string) error {
	if err := s.transactions.SaveToFile(ctx, path, Codec{}); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Load appends the transactions stored in path; malformed lines are skipped.
func (s *service) Load(ctx context.Context, path string) (recordstore.LoadResult, error) {
	res, err := s.transactions.LoadFromFile(ctx, path, Codec{})
	if err != nil {
		return res, fmt.Errorf("failed to load transactions: %w", err)
	}
	if res.Skipped > 0 {
		s.logger.Debug("skipped malformed transactions", "path", path, "skipped", res.Skipped)
	}
	return res, nil
}

func (s *service) filter(pred func(Transaction) bool) []Transaction {
	return slices.Collect(s.transactions.FindAll(pred))
}

func isExpense(t Transaction) bool { return t.IsExpense }

func isIncome(t Transaction) bool { return !t.IsExpense }

func total(seq iter.Seq[Transaction]) decimal.Decimal {
	return recordstore.Aggregate(seq, decimal.Zero, func(acc decimal.Decimal, t Transaction) decimal.Decimal {
		return acc.Add(t.Amount)
	})
}
