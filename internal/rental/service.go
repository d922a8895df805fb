// internal/rental/service.go
package rental

import (
	"context"

	"recordbook/pkg/recordstore"
)

// Service defines the interface for the movie rental service.
type Service interface {
	AddMovie(ctx context.Context, id int, title, genre string) (*Movie, error)
	Movies() []Movie
	Movie(id int) (*Movie, error)
	SearchMovies(title, genre string) []Movie
	MoviesByGenre(genre string) []Movie
	CountAvailable() int

	RegisterCustomer(ctx context.Context, id int, name, phone string) (*Customer, error)
	UpdateCustomer(ctx context.Context, id int, name, phone string) (*Customer, error)
	Customers() []Customer

	RentMovie(ctx context.Context, customerID, movieID int) (*Rental, error)
	ReturnMovie(ctx context.Context, position int) (*Return, error)
	Rentals() []Rental
	RentalHistory(customerID int) []Rental

	Report() Report
	ExportReport(path string) error
	SaveMovies(ctx context.Context, path string) error
	LoadMovies(ctx context.Context, path string) (recordstore.LoadResult, error)
}
