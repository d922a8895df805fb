package budget

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recordbook/pkg/recordstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestService(t *testing.T, now time.Time) *service {
	t.Helper()
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBalanceAfterExpenseAndIncome(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	_, err := svc.AddTransaction(ctx, "Coffee", dec("4.50"), true, "Food")
	require.NoError(t, err)
	assert.True(t, svc.Balance().Equal(dec("-4.50")))

	_, err = svc.AddTransaction(ctx, "Salary", dec("2000"), false, "Job")
	require.NoError(t, err)
	assert.True(t, svc.Balance().Equal(dec("1995.50")))
	assert.True(t, svc.TotalIncome().Equal(dec("2000")))
	assert.True(t, svc.TotalExpenses().Equal(dec("4.50")))
	assert.Equal(t, "$1995.50", Money(svc.Balance()))
}

func TestAddTransactionValidation(t *testing.T) {
	svc := newTestService(t, time.Now().UTC())

	_, err := svc.AddTransaction(context.Background(), "  ", dec("1"), true, "Food")
	assert.ErrorIs(t, err, recordstore.ErrValidation)

	_, err = svc.AddTransaction(context.Background(), "Tea", dec("1"), true, "")
	assert.ErrorIs(t, err, recordstore.ErrValidation)
	assert.Empty(t, svc.Transactions())
}

func TestEditTransactionMovesToEnd(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, date)

	for _, d := range []string{"Rent", "Coffee", "Books"} {
		_, err := svc.AddTransaction(ctx, d, dec("10"), true, "Misc")
		require.NoError(t, err)
	}

	edited, err := svc.EditTransaction(ctx, "coffee", dec("3.25"), true, "Food")
	require.NoError(t, err)
	assert.Equal(t, "Coffee", edited.Description)
	assert.Equal(t, date, edited.Date)

	all := svc.Transactions()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Rent", "Books", "Coffee"}, []string{all[0].Description, all[1].Description, all[2].Description})
	assert.True(t, all[2].Amount.Equal(dec("3.25")))
	assert.Equal(t, "Food", all[2].Category)
}

func TestEditAndDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Now().UTC())
	_, err := svc.AddTransaction(ctx, "Rent", dec("800"), true, "Housing")
	require.NoError(t, err)

	_, err = svc.EditTransaction(ctx, "Missing", dec("1"), false, "X")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	err = svc.DeleteTransaction(ctx, "Missing")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	assert.Len(t, svc.Transactions(), 1)

	require.NoError(t, svc.DeleteTransaction(ctx, "RENT"))
	assert.Empty(t, svc.Transactions())
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	_, _ = svc.AddTransaction(ctx, "Morning coffee", dec("4"), true, "Food")
	svc.now = func() time.Time { return time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC) }
	_, _ = svc.AddTransaction(ctx, "Groceries", dec("60"), true, "food")
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	_, _ = svc.AddTransaction(ctx, "Salary", dec("2500"), false, "Job")

	assert.Len(t, svc.ByCategory("FOOD"), 2)
	assert.Len(t, svc.Search("COFFEE"), 1)
	assert.Len(t, svc.ByAmountRange(dec("4"), dec("60")), 2)
	assert.Len(t, svc.ByDateRange(
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	), 2)
	assert.Equal(t, []string{"Food", "Job"}, svc.Categories())

	r := svc.Report()
	assert.Equal(t, 3, r.Count)
	require.Len(t, r.ExpensesByCategory, 1)
	assert.Equal(t, "Food", r.ExpensesByCategory[0].Key)
	assert.True(t, r.ExpensesByCategory[0].Value.Equal(dec("64")))
	assert.True(t, r.Balance.Equal(dec("2436")))
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))
	_, _ = svc.AddTransaction(ctx, "Salary", dec("1000"), false, "Job")
	_, _ = svc.AddTransaction(ctx, "Rent", dec("400"), true, "Housing")
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	_, _ = svc.AddTransaction(ctx, "Bonus", dec("50"), false, "Job")

	r, err := svc.MonthlyReport(time.May, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Count)
	assert.True(t, r.TotalIncome.Equal(dec("1000")))
	assert.True(t, r.TotalExpenses.Equal(dec("400")))
	assert.True(t, r.Balance.Equal(dec("600")))

	_, err = svc.MonthlyReport(time.July, 2024)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestSaveLoadPreservesDates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.txt")
	date := time.Date(2023, 11, 20, 14, 30, 0, 0, time.UTC)

	src := newTestService(t, date)
	_, _ = src.AddTransaction(ctx, "Coffee", dec("4.50"), true, "Food")
	_, _ = src.AddTransaction(ctx, "Salary", dec("2000"), false, "Job")
	require.NoError(t, src.Save(ctx, path))

	dst := newTestService(t, time.Now().UTC())
	res, err := dst.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, recordstore.LoadResult{Loaded: 2}, res)

	got := dst.Transactions()
	require.Len(t, got, 2)
	for i, want := range src.Transactions() {
		assert.Equal(t, Codec{}.Encode(want), Codec{}.Encode(got[i]))
		assert.Equal(t, date, got[i].Date)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.txt")
	content := "Coffee|4.50|True|Food|2024-01-01T00:00:00Z\n" +
		"broken line\n" +
		"Tea|abc|True|Food|2024-01-01T00:00:00Z\n" +
		"Salary|100|maybe|Job|2024-01-01T00:00:00Z\n" +
		"|5|True|Food|2024-01-01T00:00:00Z\n" +
		"Lunch|12|true|Food|2024-01-02T00:00:00Z\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc := newTestService(t, time.Now().UTC())
	res, err := svc.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, 4, res.Skipped)
}

func TestLoadMissingFile(t *testing.T) {
	svc := newTestService(t, time.Now().UTC())
	_, err := svc.Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBalanceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
		cents := rapid.SliceOfN(rapid.Int64Range(1, 1_000_000), 0, 20).Draw(t, "cents")
		kinds := rapid.SliceOfN(rapid.Bool(), len(cents), len(cents)).Draw(t, "kinds")

		want := decimal.Zero
		for i, c := range cents {
			amount := decimal.New(c, -2)
			if _, err := svc.AddTransaction(context.Background(), "t", amount, kinds[i], "c"); err != nil {
				t.Fatalf("add: %v", err)
			}
			if kinds[i] {
				want = want.Sub(amount)
			} else {
				want = want.Add(amount)
			}
		}
		if !svc.Balance().Equal(want) {
			t.Fatalf("balance %s, want %s", svc.Balance(), want)
		}
		if !svc.TotalIncome().Sub(svc.TotalExpenses()).Equal(svc.Balance()) {
			t.Fatalf("income minus expenses differs from balance")
		}
	})
}

func TestSeparatorsAreRejectedAndCommasRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddTransaction(ctx, "Rent|June", dec("900"), true, "Home")
	assert.ErrorIs(t, err, recordstore.ErrValidation)
	_, err = svc.AddTransaction(ctx, "Rent", dec("900"), true, "Home\nOffice")
	assert.ErrorIs(t, err, recordstore.ErrValidation)
	assert.Empty(t, svc.Transactions())

	_, err = svc.AddTransaction(ctx, "Rent, June", dec("900"), true, "Home, shared")
	require.NoError(t, err)
	_, err = svc.EditTransaction(ctx, "Rent, June", dec("950"), true, "Home|Office")
	assert.ErrorIs(t, err, recordstore.ErrValidation)

	path := filepath.Join(t.TempDir(), "transactions.txt")
	require.NoError(t, svc.Save(ctx, path))
	dst := newTestService(t, time.Now().UTC())
	res, err := dst.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, recordstore.LoadResult{Loaded: 1}, res)
	require.Len(t, dst.Transactions(), 1)
	got := dst.Transactions()[0]
	assert.Equal(t, "Rent, June", got.Description)
	assert.Equal(t, "Home, shared", got.Category)
	assert.Equal(t, Codec{}.Encode(svc.Transactions()[0]), Codec{}.Encode(got))
}
