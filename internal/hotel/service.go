// internal/hotel/service.go
package hotel

import (
	"context"
	"time"

	"recordbook/pkg/recordstore"

	"github.com/shopspring/decimal"
)

// Service defines the interface for the hotel reservation service.
type Service interface {
	AddRoom(ctx context.Context, number int, roomType string, price decimal.Decimal) (*Room, error)
	UpdateRoom(ctx context.Context, number int, roomType string, price decimal.Decimal) (*Room, error)
	Rooms() []Room
	Room(number int) (*Room, error)
	AvailableRooms(start, end time.Time) []Room

	MakeReservation(ctx context.Context, guest string, room int, start, end time.Time) (*Reservation, error)
	CancelReservation(ctx context.Context, guest string, room int) error
	ModifyReservation(ctx context.Context, guest string, room int, start, end time.Time) (*Reservation, error)
	Reservations() []Reservation

	AddCustomer(ctx context.Context, name, phone, email string) (*Customer, error)
	Customer(name string) (*Customer, error)

	Report() Report
	Save(ctx context.Context, roomsPath, reservationsPath string) error
	Load(ctx context.Context, roomsPath, reservationsPath string) (recordstore.LoadResult, error)
}
