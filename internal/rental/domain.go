// internal/rental/domain.go
package rental

import (
	"fmt"
	"strconv"
	"time"

	"recordbook/internal/console"
	"recordbook/pkg/recordstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// RentalPeriod is the time a customer may keep a movie without a fee.
	RentalPeriod = 7 * 24 * time.Hour
	day          = 24 * time.Hour
)

// LateFeePerDay is charged for every whole day past the due date.
var LateFeePerDay = decimal.RequireFromString("1.50")

// Movie is a rentable title identified by its number.
type Movie struct {
	ID        int    `json:"movie_id"`
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Available bool   `json:"available"`
}

func (m Movie) Key() string { return strconv.Itoa(m.ID) }

func (m Movie) Validate() error {
	if m.ID <= 0 {
		return &recordstore.ValidationError{Field: "movie id", Reason: "must be positive"}
	}
	if err := recordstore.Required("title", m.Title); err != nil {
		return err
	}
	if err := recordstore.Storable("title", m.Title); err != nil {
		return err
	}
	return recordstore.Storable("genre", m.Genre)
}

func (m Movie) Clone() Movie { return m }

func (m Movie) String() string {
	status := "Rented"
	if m.Available {
		status = "Available"
	}
	return fmt.Sprintf("%d: %s (%s) - %s", m.ID, m.Title, m.Genre, status)
}

// Customer is a registered renter.
type Customer struct {
	ID    int    `json:"customer_id"`
	Name  string `json:"name"`
	Phone string `json:"phone_number"`
}

func (c Customer) Key() string { return strconv.Itoa(c.ID) }

func (c Customer) Validate() error {
	if c.ID <= 0 {
		return &recordstore.ValidationError{Field: "customer id", Reason: "must be positive"}
	}
	return recordstore.Required("name", c.Name)
}

func (c Customer) Clone() Customer { return c }

func (c Customer) String() string {
	return fmt.Sprintf("%d: %s - %s", c.ID, c.Name, c.Phone)
}

// Rental links a customer to a movie for one rental period.
type Rental struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   int       `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	MovieID      int       `json:"movie_id"`
	MovieTitle   string    `json:"movie_title"`
	RentedAt     time.Time `json:"rental_date"`
	DueAt        time.Time `json:"due_date"`
	Returned     bool      `json:"returned"`
}

func (r Rental) Key() string { return r.ID.String() }

func (r Rental) Validate() error {
	if r.DueAt.Before(r.RentedAt) {
		return &recordstore.ValidationError{Field: "due date", Reason: "must not precede the rental date"}
	}
	return nil
}

func (r Rental) Clone() Rental { return r }

// LateFee is the fee owed at now: LateFeePerDay for each whole day past the due date.
// A returned rental owes nothing.
func (r Rental) LateFee(now time.Time) decimal.Decimal {
	if r.Returned {
		return decimal.Zero
	}
	overdue := int64(now.Sub(r.DueAt) / day)
	if overdue <= 0 {
		return decimal.Zero
	}
	return LateFeePerDay.Mul(decimal.NewFromInt(overdue))
}

func (r Rental) String() string {
	s := fmt.Sprintf("Rental: %s rented '%s' on %s (Due: %s)",
		r.CustomerName, r.MovieTitle, r.RentedAt.Format(console.DateLayout), r.DueAt.Format(console.DateLayout))
	if r.Returned {
		s += " - Returned"
	}
	return s
}

// Return is the outcome of closing a rental.
type Return struct {
	Rental  Rental
	LateFee decimal.Decimal
}

// Report summarizes the store.
type Report struct {
	TotalMovies    int
	TotalCustomers int
	TotalRentals   int
	Rentals        []Rental
}
