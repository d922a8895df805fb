// internal/hotel/codec.go
package hotel

import (
	"strconv"

	"recordbook/pkg/recordstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomCodec reads and writes number|type|price|available lines.
type RoomCodec struct{}

func (RoomCodec) Encode(r Room) string {
	return recordstore.JoinFields(
		strconv.Itoa(r.Number),
		r.Type,
		r.Price.String(),
		recordstore.FormatBool(r.Available),
	)
}

func (RoomCodec) Decode(line string) (Room, error) {
	parts, err := recordstore.SplitFields(line, 4)
	if err != nil {
		return Room{}, err
	}
	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return Room{}, recordstore.Malformed("room number %q", parts[0])
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return Room{}, recordstore.Malformed("price %q", parts[2])
	}
	available, err := recordstore.ParseBool(parts[3])
	if err != nil {
		return Room{}, err
	}
	return Room{Number: number, Type: parts[1], Price: price, Available: available}, nil
}

// ReservationCodec reads and writes id|guest|room|start|end|price lines.
type ReservationCodec struct{}

func (ReservationCodec) Encode(r Reservation) string {
	return recordstore.JoinFields(
		r.ID.String(),
		r.Guest,
		strconv.Itoa(r.Room),
		recordstore.FormatTime(r.Start),
		recordstore.FormatTime(r.End),
		r.Price.String(),
	)
}

func (ReservationCodec) Decode(line string) (Reservation, error) {
	parts, err := recordstore.SplitFields(line, 6)
	if err != nil {
		return Reservation{}, err
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return Reservation{}, recordstore.Malformed("reservation id %q", parts[0])
	}
	room, err := strconv.Atoi(parts[2])
	if err != nil {
		return Reservation{}, recordstore.Malformed("room number %q", parts[2])
	}
	start, err := recordstore.ParseTime(parts[3])
	if err != nil {
		return Reservation{}, err
	}
	end, err := recordstore.ParseTime(parts[4])
	if err != nil {
		return Reservation{}, err
	}
	price, err := decimal.NewFromString(parts[5])
	if err != nil {
		return Reservation{}, recordstore.Malformed("price %q", parts[5])
	}
	return Reservation{ID: id, Guest: parts[1], Room: room, Start: start, End: end, Price: price}, nil
}
