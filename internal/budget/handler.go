// internal/budget/handler.go
package budget

import (
	"context"
	"errors"
	"time"

	"recordbook/internal/console"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service Service
	p       *console.Prompter
}

func NewHandler(service Service, p *console.Prompter) *Handler {
	return &Handler{service: service, p: p}
}

// Run shows the budgeting menu until the operator exits.
func (h *Handler) Run(ctx context.Context) error {
	return h.p.Run(ctx, console.Menu{
		Title: "Budgeting Tool",
		Items: []console.Item{
			{Label: "Add Transaction", Action: h.handleAdd},
			{Label: "View Transactions", Action: h.handleList},
			{Label: "View Total Income", Action: h.handleIncome},
			{Label: "View Total Expenses", Action: h.handleExpenses},
			{Label: "View Balance", Action: h.handleBalance},
			{Label: "View Transactions by Category", Action: h.handleByCategory},
			{Label: "View Transactions by Date Range", Action: h.handleByDateRange},
			{Label: "View Transactions by Amount Range", Action: h.handleByAmount},
			{Label: "Save Transactions to File", Action: h.handleSave},
			{Label: "Load Transactions from File", Action: h.handleLoad},
			{Label: "Search Transactions", Action: h.handleSearch},
			{Label: "Generate Summary Report", Action: h.handleReport},
			{Label: "View Unique Categories", Action: h.handleCategories},
			{Label: "Delete Transaction", Action: h.handleDelete},
			{Label: "Edit Transaction", Action: h.handleEdit},
			{Label: "Generate Monthly Report", Action: h.handleMonthly},
		},
	})
}

func (h *Handler) handleAdd(ctx context.Context) error {
	description, err := h.p.Line("Enter transaction description: ")
	if err != nil {
		return err
	}
	amount, err := h.amount("Enter amount: ", "Please enter a valid amount: ", decimal.Zero, false)
	if err != nil {
		return err
	}
	isExpense, err := h.p.YesNo("Is this an expense? (y/n): ")
	if err != nil {
		return err
	}
	category, err := h.p.Line("Enter category: ")
	if err != nil {
		return err
	}

	if _, err := h.service.AddTransaction(ctx, description, amount, isExpense, category); err != nil {
		return err
	}
	h.p.Println("Transaction added successfully.")
	return nil
}

func (h *Handler) handleList(context.Context) error {
	h.print(h.service.Transactions(), "No transactions available.")
	return nil
}

func (h *Handler) handleIncome(context.Context) error {
	h.p.Printf("Total Income: %s\n", Money(h.service.TotalIncome()))
	return nil
}

func (h *Handler) handleExpenses(context.Context) error {
	h.p.Printf("Total Expenses: %s\n", Money(h.service.TotalExpenses()))
	return nil
}

func (h *Handler) handleBalance(context.Context) error {
	h.p.Printf("Balance: %s\n", Money(h.service.Balance()))
	return nil
}

func (h *Handler) handleByCategory(context.Context) error {
	category, err := h.p.Line("Enter category to filter: ")
	if err != nil {
		return err
	}
	h.print(h.service.ByCategory(category), "No transactions found for category: "+category)
	return nil
}

func (h *Handler) handleByDateRange(context.Context) error {
	start, err := h.p.Date("Enter start date (yyyy-mm-dd): ", "Please enter a valid start date: ")
	if err != nil {
		return err
	}
	end, err := h.p.Date("Enter end date (yyyy-mm-dd): ", "Please enter a valid end date: ")
	if err != nil {
		return err
	}
	h.print(h.service.ByDateRange(start, end), "No transactions found for the selected date range.")
	return nil
}

func (h *Handler) handleByAmount(context.Context) error {
	lo, err := h.amount("Enter minimum amount: ", "Please enter a valid minimum amount: ", decimal.Zero, true)
	if err != nil {
		return err
	}
	hi, err := h.amount("Enter maximum amount: ", "Please enter a valid maximum amount: ", lo, true)
	if err != nil {
		return err
	}
	h.print(h.service.ByAmountRange(lo, hi), "No transactions found in the specified amount range.")
	return nil
}

func (h *Handler) handleSave(ctx context.Context) error {
	path, err := h.p.Line("Enter file path to save transactions: ")
	if err != nil {
		return err
	}
	if err := h.service.Save(ctx, path); err != nil {
		return err
	}
	h.p.Println("Transactions saved successfully.")
	return nil
}

func (h *Handler) handleLoad(ctx context.Context) error {
	path, err := h.p.Line("Enter file path to load transactions: ")
	if err != nil {
		return err
	}
	if _, err := h.service.Load(ctx, path); err != nil {
		return err
	}
	h.p.Println("Transactions loaded successfully.")
	return nil
}

func (h *Handler) handleSearch(context.Context) error {
	term, err := h.p.Line("Enter search term: ")
	if err != nil {
		return err
	}
	h.print(h.service.Search(term), "No transactions found for search term: "+term)
	return nil
}

func (h *Handler) handleReport(context.Context) error {
	r := h.service.Report()
	h.p.Println("Budget Summary Report")
	h.p.Printf("Total Income: %s\n", Money(r.TotalIncome))
	h.p.Printf("Total Expenses: %s\n", Money(r.TotalExpenses))
	h.p.Printf("Balance: %s\n", Money(r.Balance))
	h.p.Printf("Total Transactions: %d\n", r.Count)
	h.p.Println("Expenses by Category:")
	rows := make([]table.Row, 0, len(r.ExpensesByCategory))
	for _, g := range r.ExpensesByCategory {
		rows = append(rows, table.Row{g.Key, Money(g.Value)})
	}
	h.p.Table(table.Row{"Category", "Amount"}, rows, "No expenses recorded.")
	return nil
}

func (h *Handler) handleCategories(context.Context) error {
	categories := h.service.Categories()
	if len(categories) == 0 {
		h.p.Println("No categories found.")
		return nil
	}
	h.p.Println("Unique Categories:")
	for _, c := range categories {
		h.p.Println(c)
	}
	return nil
}

func (h *Handler) handleDelete(ctx context.Context) error {
	description, err := h.p.Line("Enter transaction description to delete: ")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTransaction(ctx, description); err != nil {
		return err
	}
	h.p.Printf("Transaction '%s' deleted successfully.\n", description)
	return nil
}

func (h *Handler) handleEdit(ctx context.Context) error {
	description, err := h.p.Line("Enter transaction description to edit: ")
	if err != nil {
		return err
	}
	amount, err := h.amount("Enter new amount: ", "Please enter a valid new amount: ", decimal.Zero, false)
	if err != nil {
		return err
	}
	isExpense, err := h.p.YesNo("Is this a new expense? (y/n): ")
	if err != nil {
		return err
	}
	category, err := h.p.Line("Enter new category: ")
	if err != nil {
		return err
	}

	if _, err := h.service.EditTransaction(ctx, description, amount, isExpense, category); err != nil {
		return err
	}
	h.p.Printf("Transaction '%s' updated successfully.\n", description)
	return nil
}

func (h *Handler) handleMonthly(context.Context) error {
	month, err := h.p.Int("Enter month (1-12): ", "Please enter a valid month (1-12): ", func(m int) bool { return m >= 1 && m <= 12 })
	if err != nil {
		return err
	}
	year, err := h.p.Int("Enter year: ", "Please enter a valid year: ", nil)
	if err != nil {
		return err
	}

	r, err := h.service.MonthlyReport(time.Month(month), year)
	if err != nil {
		return err
	}
	h.p.Printf("Monthly Report for %s %d\n", r.Month, r.Year)
	h.p.Printf("Total Income: %s\n", Money(r.TotalIncome))
	h.p.Printf("Total Expenses: %s\n", Money(r.TotalExpenses))
	h.p.Printf("Balance: %s\n", Money(r.Balance))
	return nil
}

// amount prompts for a decimal above floor, or at least floor when inclusive.
func (h *Handler) amount(prompt, retry string, floor decimal.Decimal, inclusive bool) (decimal.Decimal, error) {
	return console.Ask(h.p, prompt, retry, func(s string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, err
		}
		if d.LessThan(floor) || (!inclusive && d.Equal(floor)) {
			return decimal.Zero, errors.New("amount out of range")
		}
		return d, nil
	})
}

func (h *Handler) print(transactions []Transaction, empty string) {
	if len(transactions) == 0 {
		h.p.Println(empty)
		return
	}
	for _, t := range transactions {
		h.p.Println(t)
	}
}
