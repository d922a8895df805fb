// internal/hotel/domain.go
package hotel

import (
	"fmt"
	"strconv"
	"time"

	"recordbook/internal/console"
	"recordbook/pkg/recordstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Room is a bookable room identified by its number.
type Room struct {
	Number    int             `json:"number"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price_per_night"`
	Available bool            `json:"available"`
}

func (r Room) Key() string { return strconv.Itoa(r.Number) }

func (r Room) Validate() error {
	if r.Number <= 0 {
		return &recordstore.ValidationError{Field: "room number", Reason: "must be positive"}
	}
	if err := recordstore.Required("room type", r.Type); err != nil {
		return err
	}
	if err := recordstore.Storable("room type", r.Type); err != nil {
		return err
	}
	if r.Price.IsNegative() {
		return &recordstore.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (r Room) Clone() Room { return r }

func (r Room) String() string {
	status := "Reserved"
	if r.Available {
		status = "Available"
	}
	return fmt.Sprintf("Room %d - %s (%s/night) - %s", r.Number, r.Type, money(r.Price), status)
}

// Reservation books one room for a guest between two dates.
// Price is the nightly rate captured when the booking was made.
type Reservation struct {
	ID    uuid.UUID       `json:"id"`
	Guest string          `json:"guest_name"`
	Room  int             `json:"room_number"`
	Start time.Time       `json:"start_date"`
	End   time.Time       `json:"end_date"`
	Price decimal.Decimal `json:"price_per_night"`
}

func (r Reservation) Key() string { return r.ID.String() }

func (r Reservation) Validate() error {
	if err := recordstore.Required("guest name", r.Guest); err != nil {
		return err
	}
	if err := recordstore.Storable("guest name", r.Guest); err != nil {
		return err
	}
	if !r.End.After(r.Start) {
		return &recordstore.ValidationError{Field: "end date", Reason: "must be after the start date"}
	}
	return nil
}

func (r Reservation) Clone() Reservation { return r }

// Nights is the number of whole nights between start and end.
func (r Reservation) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r Reservation) TotalPrice() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Nights())))
}

// Overlaps reports whether the booking intersects the half-open range [start, end).
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.Start.Before(end) && r.End.After(start)
}

func (r Reservation) String() string {
	return fmt.Sprintf("Reservation for %s: Room %d from %s to %s - Total: %s",
		r.Guest, r.Room, r.Start.Format(console.DateLayout), r.End.Format(console.DateLayout), money(r.TotalPrice()))
}

// Customer is a hotel guest profile, keyed by name.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone_number"`
	Email string `json:"email"`
}

func (c Customer) Key() string { return c.Name }

func (c Customer) Validate() error { return recordstore.Required("customer name", c.Name) }

func (c Customer) Clone() Customer { return c }

func (c Customer) String() string {
	return fmt.Sprintf("%s, Phone: %s, Email: %s", c.Name, c.Phone, c.Email)
}

// Report summarizes the hotel.
type Report struct {
	TotalRooms        int
	TotalReservations int
	TotalCustomers    int
	Revenue           decimal.Decimal
	Reservations      []Reservation
}

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }
