// internal/hotel/implementation.go
package hotel

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"recordbook/pkg/recordstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// service implements the Service interface.
type service struct {
	rooms        *recordstore.Store[Room]
	reservations *recordstore.Store[Reservation]
	customers    *recordstore.Store[Customer]
	logger       *slog.Logger
}

// NewService creates a new hotel service. Rooms are always updated in place so that
// reserving a room does not reorder the room list.
func NewService(logger *slog.Logger, opts ...recordstore.Option) Service {
	with := func(name string, extra ...recordstore.Option) []recordstore.Option {
		o := append([]recordstore.Option{recordstore.WithName(name), recordstore.WithLogger(logger)}, opts...)
		return append(o, extra...)
	}
	return &service{
		rooms:        recordstore.New[Room](with("rooms", recordstore.WithInPlaceUpdates())...),
		reservations: recordstore.New[Reservation](with("reservations")...),
		customers:    recordstore.New[Customer](with("customers")...),
		logger:       logger,
	}
}

// AddRoom registers a room; new rooms start available.
func (s *service) AddRoom(ctx context.Context, number int, roomType string, price decimal.Decimal) (*Room, error) {
	room := Room{Number: number, Type: roomType, Price: price, Available: true}
	if err := s.rooms.Add(ctx, room); err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoom replaces the type and price of a room and keeps its availability.
func (s *service) UpdateRoom(ctx context.Context, number int, roomType string, price decimal.Decimal) (*Room, error) {
	updated, ok, err := s.rooms.UpdateByKey(ctx, strconv.Itoa(number), func(old Room) (Room, error) {
		return Room{Number: old.Number, Type: roomType, Price: price, Available: old.Available}, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, roomNotFound(number)
	}
	return &updated, nil
}

func (s *service) Rooms() []Room {
	return s.rooms.All()
}

func (s *service) Room(number int) (*Room, error) {
	room, ok := s.rooms.FindByKey(strconv.Itoa(number))
	if !ok {
		return nil, roomNotFound(number)
	}
	return &room, nil
}

// AvailableRooms lists the rooms with no reservation overlapping [start, end).
func (s *service) AvailableRooms(start, end time.Time) []Room {
	var booked []int
	for r := range s.reservations.FindAll(func(r Reservation) bool { return r.Overlaps(start, end) }) {
		booked = append(booked, r.Room)
	}
	return slices.Collect(s.rooms.FindAll(func(r Room) bool {
		return !slices.Contains(booked, r.Number)
	}))
}

// MakeReservation reserves an available room. The room is marked unavailable first and
// released again if the booking cannot be recorded.
func (s *service) MakeReservation(ctx context.Context, guest string, room int, start, end time.Time) (*Reservation, error) {
	r, err := s.Room(room)
	if err != nil {
		return nil, err
	}
	if !r.Available {
		return nil, fmt.Errorf("room %d is not available for reservation: %w", room, recordstore.ErrNotAvailable)
	}

	res := Reservation{
		ID:    uuid.New(),
		Guest: guest,
		Room:  room,
		Start: start,
		End:   end,
		Price: r.Price,
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if err := s.book(ctx, res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CancelReservation releases the room and removes the first booking for guest in room.
func (s *service) CancelReservation(ctx context.Context, guest string, room int) error {
	res, ok := s.findReservation(guest, room)
	if !ok {
		return reservationNotFound(guest, room)
	}
	s.release(ctx, res)
	return nil
}

// ModifyReservation cancels the booking and makes a new one with the given dates.
// If the new booking fails, the original booking is restored.
func (s *service) ModifyReservation(ctx context.Context, guest string, room int, start, end time.Time) (*Reservation, error) {
	old, ok := s.findReservation(guest, room)
	if !ok {
		return nil, reservationNotFound(guest, room)
	}
	s.release(ctx, old)

	res, err := s.MakeReservation(ctx, old.Guest, room, start, end)
	if err != nil {
		s.logger.Warn("compensating for failed modification: restoring reservation",
			"reservation_id", old.ID, "room", room, "error", err)
		if rerr := s.book(ctx, old); rerr != nil {
			s.logger.Error("failed to restore reservation", "reservation_id", old.ID, "error", rerr)
		}
		return nil, fmt.Errorf("failed to modify reservation: %w", err)
	}
	return res, nil
}

func (s *service) Reservations() []Reservation {
	return s.reservations.All()
}

func (s *service) AddCustomer(ctx context.Context, name, phone, email string) (*Customer, error) {
	c := Customer{Name: name, Phone: phone, Email: email}
	if err := s.customers.Add(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *service) Customer(name string) (*Customer, error) {
	c, ok := s.customers.FindByKey(name)
	if !ok {
		return nil, fmt.Errorf("customer %q: %w", name, recordstore.ErrNotFound)
	}
	return &c, nil
}

func (s *service) Report() Report {
	reservations := s.reservations.All()
	revenue := recordstore.Aggregate(slices.Values(reservations), decimal.Zero, func(acc decimal.Decimal, r Reservation) decimal.Decimal {
		return acc.Add(r.TotalPrice())
	})
	return Report{
		TotalRooms:        s.rooms.Len(),
		TotalReservations: len(reservations),
		TotalCustomers:    s.customers.Len(),
		Revenue:           revenue,
		Reservations:      reservations,
	}
}

// Save overwrites both files with the current rooms and reservations.
func (s *service) Save(ctx context.Context, roomsPath, reservationsPath string) error {
	if err := s.rooms.SaveToFile(ctx, roomsPath, RoomCodec{}); err != nil {
		return fmt.Errorf("failed to save rooms: %w", err)
	}
	if err := s.reservations.SaveToFile(ctx, reservationsPath, ReservationCodec{}); err != nil {
		return fmt.Errorf("failed to save reservations: %w", err)
	}
	return nil
}

// Load appends rooms and reservations from both files and returns the combined counts.
// When the reservations cannot be loaded the rooms appended by this call are dropped again.
func (s *service) Load(ctx context.Context, roomsPath, reservationsPath string) (recordstore.LoadResult, error) {
	roomCount := s.rooms.Len()
	rooms, err := s.rooms.LoadFromFile(ctx, roomsPath, RoomCodec{})
	if err != nil {
		return recordstore.LoadResult{}, fmt.Errorf("failed to load rooms: %w", err)
	}
	reservations, err := s.reservations.LoadFromFile(ctx, reservationsPath, ReservationCodec{})
	if err != nil {
		s.logger.Warn("compensating for failed load: dropping loaded rooms", "rooms", rooms.Loaded, "error", err)
		s.rooms.Truncate(roomCount)
		return recordstore.LoadResult{}, fmt.Errorf("failed to load reservations: %w", err)
	}
	return recordstore.LoadResult{
		Loaded:  rooms.Loaded + reservations.Loaded,
		Skipped: rooms.Skipped + reservations.Skipped,
	}, nil
}

// book marks the room reserved and records res, undoing the first step if the second fails.
func (s *service) book(ctx context.Context, res Reservation) error {
	if err := s.setAvailable(ctx, res.Room, false); err != nil {
		return err
	}
	if err := s.reservations.Add(ctx, res); err != nil {
		s.logger.Warn("compensating for failed reservation: releasing room", "room", res.Room, "error", err)
		if cerr := s.setAvailable(ctx, res.Room, true); cerr != nil {
			s.logger.Error("failed to release room", "room", res.Room, "error", cerr)
		}
		return fmt.Errorf("failed to record reservation: %w", err)
	}
	return nil
}

// release frees the room and drops the booking.
func (s *service) release(ctx context.Context, res Reservation) {
	if err := s.setAvailable(ctx, res.Room, true); err != nil {
		s.logger.Warn("reservation references a missing room", "room", res.Room, "reservation_id", res.ID)
	}
	s.reservations.DeleteByKey(ctx, res.Key())
}

func (s *service) setAvailable(ctx context.Context, number int, available bool) error {
	_, ok, err := s.rooms.UpdateByKey(ctx, strconv.Itoa(number), func(r Room) (Room, error) {
		r.Available = available
		return r, nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return roomNotFound(number)
	}
	return nil
}

func (s *service) findReservation(guest string, room int) (Reservation, bool) {
	return s.reservations.Find(func(r Reservation) bool {
		return r.Room == room && recordstore.EqualFold(r.Guest, guest)
	})
}

func roomNotFound(number int) error {
	return fmt.Errorf("room %d: %w", number, recordstore.ErrNotFound)
}

func reservationNotFound(guest string, room int) error {
	return fmt.Errorf("reservation for %q in room %d: %w", guest, room, recordstore.ErrNotFound)
}
