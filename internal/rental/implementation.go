// internal/rental/implementation.go
package rental

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"recordbook/internal/console"
	"recordbook/pkg/recordstore"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	movies    *recordstore.Store[Movie]
	customers *recordstore.Store[Customer]
	rentals   *recordstore.Store[Rental]
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new movie rental service. Movies and customers are updated in place.
func NewService(logger *slog.Logger, opts ...recordstore.Option) Service {
	with := func(name string, extra ...recordstore.Option) []recordstore.Option {
		o := append([]recordstore.Option{recordstore.WithName(name), recordstore.WithLogger(logger)}, opts...)
		return append(o, extra...)
	}
	return &service{
		movies:    recordstore.New[Movie](with("movies", recordstore.WithInPlaceUpdates())...),
		customers: recordstore.New[Customer](with("customers", recordstore.WithInPlaceUpdates())...),
		rentals:   recordstore.New[Rental](with("rentals")...),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddMovie adds a movie to the catalog; new movies start available.
func (s *service) AddMovie(ctx context.Context, id int, title, genre string) (*Movie, error) {
	m := Movie{ID: id, Title: title, Genre: genre, Available: true}
	if err := s.movies.Add(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *service) Movies() []Movie {
	return s.movies.All()
}

func (s *service) Movie(id int) (*Movie, error) {
	m, ok := s.movies.FindByKey(strconv.Itoa(id))
	if !ok {
		return nil, fmt.Errorf("movie %d: %w", id, recordstore.ErrNotFound)
	}
	return &m, nil
}

// SearchMovies matches a title substring and an exact genre, ignoring case.
// An empty criterion matches every movie.
func (s *service) SearchMovies(title, genre string) []Movie {
	return slices.Collect(s.movies.FindAll(func(m Movie) bool {
		return recordstore.ContainsFold(m.Title, title) &&
			(genre == "" || recordstore.EqualFold(m.Genre, genre))
	}))
}

func (s *service) MoviesByGenre(genre string) []Movie {
	return slices.Collect(s.movies.FindAll(func(m Movie) bool {
		return recordstore.EqualFold(m.Genre, genre)
	}))
}

func (s *service) CountAvailable() int {
	return recordstore.Count(s.movies.FindAll(func(m Movie) bool { return m.Available }))
}

func (s *service) RegisterCustomer(ctx context.Context, id int, name, phone string) (*Customer, error) {
	c := Customer{ID: id, Name: name, Phone: phone}
	if err := s.customers.Add(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCustomer replaces the name and phone number of a customer.
func (s *service) UpdateCustomer(ctx context.Context, id int, name, phone string) (*Customer, error) {
	updated, ok, err := s.customers.UpdateByKey(ctx, strconv.Itoa(id), func(c Customer) (Customer, error) {
		c.Name = name
		c.Phone = phone
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, customerNotFound(id)
	}
	return &updated, nil
}

func (s *service) Customers() []Customer {
	return s.customers.All()
}

// RentMovie marks the movie rented and records a rental due after RentalPeriod.
// The movie is released again if the rental cannot be recorded.
func (s *service) RentMovie(ctx context.Context, customerID, movieID int) (*Rental, error) {
	c, ok := s.customers.FindByKey(strconv.Itoa(customerID))
	if !ok {
		return nil, customerNotFound(customerID)
	}
	m, err := s.Movie(movieID)
	if err != nil {
		return nil, err
	}
	if !m.Available {
		return nil, fmt.Errorf("movie %d is not available for rent: %w", movieID, recordstore.ErrNotAvailable)
	}

	if err := s.setAvailable(ctx, movieID, false); err != nil {
		return nil, err
	}
	now := s.now()
	r := Rental{
		ID:           uuid.New(),
		CustomerID:   c.ID,
		CustomerName: c.Name,
		MovieID:      m.ID,
		MovieTitle:   m.Title,
		RentedAt:     now,
		DueAt:        now.Add(RentalPeriod),
	}
	if err := s.rentals.Add(ctx, r); err != nil {
		s.logger.Warn("compensating for failed rental: releasing movie", "movie_id", movieID, "error", err)
		if cerr := s.setAvailable(ctx, movieID, true); cerr != nil {
			s.logger.Error("failed to release movie", "movie_id", movieID, "error", cerr)
		}
		return nil, fmt.Errorf("failed to record rental: %w", err)
	}
	return &r, nil
}

// ReturnMovie closes the rental at the 1-based position of the rentals list.
// The late fee is assessed before the rental is closed; the movie is released and the
// rental removed.
func (s *service) ReturnMovie(ctx context.Context, position int) (*Return, error) {
	r, ok := s.rentals.At(position - 1)
	if !ok {
		return nil, fmt.Errorf("rental #%d: %w", position, recordstore.ErrNotFound)
	}

	fee := r.LateFee(s.now())
	if err := s.setAvailable(ctx, r.MovieID, true); err != nil {
		s.logger.Warn("rental references a missing movie", "movie_id", r.MovieID, "rental_id", r.ID)
	}
	r.Returned = true
	s.rentals.DeleteByKey(ctx, r.Key())
	return &Return{Rental: r, LateFee: fee}, nil
}

func (s *service) Rentals() []Rental {
	return s.rentals.All()
}

func (s *service) RentalHistory(customerID int) []Rental {
	return slices.Collect(s.rentals.FindAll(func(r Rental) bool { return r.CustomerID == customerID }))
}

func (s *service) Report() Report {
	return Report{
		TotalMovies:    s.movies.Len(),
		TotalCustomers: s.customers.Len(),
		TotalRentals:   s.rentals.Len(),
		Rentals:        s.rentals.All(),
	}
}

// ExportReport writes a human-readable rental report to path.
func (s *service) ExportReport(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to export report: %w", cerr)
		}
	}()

	r := s.Report()
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Movie Rental Report:")
	fmt.Fprintf(w, "Total Movies: %d\n", r.TotalMovies)
	fmt.Fprintf(w, "Total Customers: %d\n", r.TotalCustomers)
	fmt.Fprintf(w, "Total Rentals: %d\n", r.TotalRentals)
	fmt.Fprintln(w, "Rental Details:")
	for _, rental := range r.Rentals {
		fmt.Fprintf(w, "%s rented '%s' on %s (Due: %s)\n", rental.CustomerName, rental.MovieTitle,
			rental.RentedAt.Format(console.DateLayout), rental.DueAt.Format(console.DateLayout))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	return nil
}

func (s *service) SaveMovies(ctx context.Context, path string) error {
	if err := s.movies.SaveToFile(ctx, path, MovieCodec{}); err != nil {
		return fmt.Errorf("failed to save movies: %w", err)
	}
	return nil
}

func (s *service) LoadMovies(ctx context.Context, path string) (recordstore.LoadResult, error) {
	res, err := s.movies.LoadFromFile(ctx, path, MovieCodec{})
	if err != nil {
		return res, fmt.Errorf("failed to load movies: %w", err)
	}
	return res, nil
}

func (s *service) setAvailable(ctx context.Context, id int, available bool) error {
	_, ok, err := s.movies.UpdateByKey(ctx, strconv.Itoa(id), func(m Movie) (Movie, error) {
		m.Available = available
		return m, nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("movie %d: %w", id, recordstore.ErrNotFound)
	}
	return nil
}

func customerNotFound(id int) error {
	return fmt.Errorf("customer %d: %w", id, recordstore.ErrNotFound)
}
