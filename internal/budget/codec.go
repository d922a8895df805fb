// internal/budget/codec.go
package budget

import (
	"recordbook/pkg/recordstore"

	"github.com/shopspring/decimal"
)

// Codec reads and writes description|amount|isExpense|category|date lines.
type Codec struct{}

func (Codec) Encode(t Transaction) string {
	return recordstore.JoinFields(
		t.Description,
		t.Amount.String(),
		recordstore.FormatBool(t.IsExpense),
		t.Category,
		recordstore.FormatTime(t.Date),
	)
}

func (Codec) Decode(line string) (Transaction, error) {
	parts, err := recordstore.SplitFields(line, 5)
	if err != nil {
		return Transaction{}, err
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return Transaction{}, recordstore.Malformed("amount %q", parts[1])
	}
	isExpense, err := recordstore.ParseBool(parts[2])
	if err != nil {
		return Transaction{}, err
	}
	date, err := recordstore.ParseTime(parts[4])
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Description: parts[0],
		Amount:      amount,
		IsExpense:   isExpense,
		Category:    parts[3],
		Date:        date,
	}, nil
}
