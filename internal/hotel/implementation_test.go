package hotel

import (
	"context"
	"io"
	"io/fs"
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

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestReservationLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.AddRoom(ctx, 101, "Single", decimal.NewFromInt(100))
	require.NoError(t, err)

	res, err := svc.MakeReservation(ctx, "Alice", 101, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Nights())
	assert.True(t, res.TotalPrice().Equal(decimal.NewFromInt(200)))

	room, err := svc.Room(101)
	require.NoError(t, err)
	assert.False(t, room.Available)

	_, err = svc.MakeReservation(ctx, "Bob", 101, day(2024, 2, 1), day(2024, 2, 3))
	assert.ErrorIs(t, err, recordstore.ErrNotAvailable)
	assert.Len(t, svc.Reservations(), 1)

	require.NoError(t, svc.CancelReservation(ctx, "alice", 101))
	room, err = svc.Room(101)
	require.NoError(t, err)
	assert.True(t, room.Available)
	assert.Empty(t, svc.Reservations())
}

func TestMakeReservationPreconditions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.AddRoom(ctx, 7, "Suite", decimal.NewFromInt(300))
	require.NoError(t, err)

	_, err = svc.MakeReservation(ctx, "Alice", 8, day(2024, 1, 1), day(2024, 1, 2))
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	_, err = svc.MakeReservation(ctx, "Alice", 7, day(2024, 1, 2), day(2024, 1, 2))
	assert.ErrorIs(t, err, recordstore.ErrValidation)

	room, err := svc.Room(7)
	require.NoError(t, err)
	assert.True(t, room.Available)
	assert.Empty(t, svc.Reservations())
}

func TestCancelUnknownReservation(t *testing.T) {
	svc := newTestService(t)
	err := svc.CancelReservation(context.Background(), "Nobody", 1)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestModifyReservation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.AddRoom(ctx, 101, "Single", decimal.NewFromInt(100))
	_, err := svc.MakeReservation(ctx, "Alice", 101, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	res, err := svc.ModifyReservation(ctx, "Alice", 101, day(2024, 1, 10), day(2024, 1, 15))
	require.NoError(t, err)
	assert.True(t, res.TotalPrice().Equal(decimal.NewFromInt(500)))
	require.Len(t, svc.Reservations(), 1)
	assert.Equal(t, day(2024, 1, 10), svc.Reservations()[0].Start)
}

func TestModifyReservationRestoresOriginalOnFailure(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.AddRoom(ctx, 101, "Single", decimal.NewFromInt(100))
	original, err := svc.MakeReservation(ctx, "Alice", 101, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	_, err = svc.ModifyReservation(ctx, "Alice", 101, day(2024, 1, 10), day(2024, 1, 5))
	assert.ErrorIs(t, err, recordstore.ErrValidation)

	reservations := svc.Reservations()
	require.Len(t, reservations, 1)
	assert.Equal(t, *original, reservations[0])
	room, err := svc.Room(101)
	require.NoError(t, err)
	assert.False(t, room.Available)
}

func TestUpdateRoomKeepsAvailabilityAndPosition(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.AddRoom(ctx, 1, "Single", decimal.NewFromInt(80))
	_, _ = svc.AddRoom(ctx, 2, "Double", decimal.NewFromInt(120))
	_, err := svc.MakeReservation(ctx, "Alice", 1, day(2024, 1, 1), day(2024, 1, 2))
	require.NoError(t, err)

	updated, err := svc.UpdateRoom(ctx, 1, "Deluxe", decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.False(t, updated.Available)

	rooms := svc.Rooms()
	require.Len(t, rooms, 2)
	assert.Equal(t, "Deluxe", rooms[0].Type)

	_, err = svc.UpdateRoom(ctx, 9, "Ghost", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestAvailableRoomsExcludesOverlaps(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.AddRoom(ctx, 1, "Single", decimal.NewFromInt(80))
	_, _ = svc.AddRoom(ctx, 2, "Double", decimal.NewFromInt(120))
	_, err := svc.MakeReservation(ctx, "Alice", 1, day(2024, 1, 5), day(2024, 1, 8))
	require.NoError(t, err)

	free := svc.AvailableRooms(day(2024, 1, 7), day(2024, 1, 9))
	require.Len(t, free, 1)
	assert.Equal(t, 2, free[0].Number)

	assert.Len(t, svc.AvailableRooms(day(2024, 1, 8), day(2024, 1, 10)), 2)
}

func TestCustomersAndReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.AddCustomer(ctx, "Alice", "555-0100", "alice@example.com")
	require.NoError(t, err)
	_, err = svc.AddCustomer(ctx, "", "x", "y")
	assert.ErrorIs(t, err, recordstore.ErrValidation)

	c, err := svc.Customer("ALICE")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", c.Phone)
	_, err = svc.Customer("Bob")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	_, _ = svc.AddRoom(ctx, 1, "Single", decimal.NewFromInt(80))
	_, _ = svc.MakeReservation(ctx, "Alice", 1, day(2024, 1, 1), day(2024, 1, 4))
	r := svc.Report()
	assert.Equal(t, 1, r.TotalRooms)
	assert.Equal(t, 1, r.TotalReservations)
	assert.Equal(t, 1, r.TotalCustomers)
	assert.True(t, r.Revenue.Equal(decimal.NewFromInt(240)))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	rooms, reservations := filepath.Join(dir, "rooms.txt"), filepath.Join(dir, "reservations.txt")

	src := newTestService(t)
	_, _ = src.AddRoom(ctx, 101, "Single", decimal.RequireFromString("99.95"))
	_, _ = src.AddRoom(ctx, 102, "Double", decimal.NewFromInt(150))
	_, err := src.MakeReservation(ctx, "Alice", 101, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	require.NoError(t, src.Save(ctx, rooms, reservations))

	dst := newTestService(t)
	res, err := dst.Load(ctx, rooms, reservations)
	require.NoError(t, err)
	assert.Equal(t, recordstore.LoadResult{Loaded: 3}, res)

	for i, want := range src.Rooms() {
		assert.Equal(t, RoomCodec{}.Encode(want), RoomCodec{}.Encode(dst.Rooms()[i]))
	}
	require.Len(t, dst.Reservations(), 1)
	assert.Equal(t, src.Reservations()[0].ID, dst.Reservations()[0].ID)
	assert.True(t, dst.Reservations()[0].TotalPrice().Equal(decimal.RequireFromString("199.90")))

	require.NoError(t, dst.CancelReservation(ctx, "Alice", 101))
	room, err := dst.Room(101)
	require.NoError(t, err)
	assert.True(t, room.Available)
}

func TestDoubleBookingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
		if _, err := svc.AddRoom(ctx, 1, "Single", decimal.NewFromInt(50)); err != nil {
			t.Fatal(err)
		}
		attempts := rapid.IntRange(1, 10).Draw(t, "attempts")
		booked := 0
		for i := range attempts {
			start := day(2024, 1, 1).AddDate(0, 0, i)
			if _, err := svc.MakeReservation(ctx, "guest", 1, start, start.AddDate(0, 0, 1)); err == nil {
				booked++
			}
		}
		if booked != 1 || len(svc.Reservations()) != 1 {
			t.Fatalf("booked %d, reservations %d", booked, len(svc.Reservations()))
		}
	})
}

func TestMakeReservationCompensatesWhenBookingFails(t *testing.T) {
	ctx := context.Background()
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)),
		recordstore.WithFaultInjector(recordstore.FailOn("reservations", recordstore.OpAdd)))
	_, err := svc.AddRoom(ctx, 101, "Single", decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = svc.MakeReservation(ctx, "Alice", 101, day(2024, 1, 1), day(2024, 1, 3))
	assert.ErrorIs(t, err, recordstore.ErrInjectedFault)

	room, err := svc.Room(101)
	require.NoError(t, err)
	assert.True(t, room.Available)
	assert.Empty(t, svc.Reservations())
}

func TestHotelFieldsMustBeStorable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddRoom(ctx, 101, "Suite|Sea view", decimal.NewFromInt(300))
	assert.ErrorIs(t, err, recordstore.ErrValidation)
	_, err = svc.AddRoom(ctx, 101, "Suite", decimal.NewFromInt(300))
	require.NoError(t, err)
	_, err = svc.UpdateRoom(ctx, 101, "Suite\nSea view", decimal.NewFromInt(300))
	assert.ErrorIs(t, err, recordstore.ErrValidation)

	_, err = svc.MakeReservation(ctx, "Alice|Bob", 101, day(2024, 1, 1), day(2024, 1, 3))
	assert.ErrorIs(t, err, recordstore.ErrValidation)
	room, err := svc.Room(101)
	require.NoError(t, err)
	assert.True(t, room.Available)
	assert.Equal(t, "Suite", room.Type)
}

func TestLoadDropsRoomsWhenReservationsFail(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	rooms, reservations := filepath.Join(dir, "rooms.txt"), filepath.Join(dir, "reservations.txt")

	src := newTestService(t)
	_, _ = src.AddRoom(ctx, 101, "Single", decimal.NewFromInt(100))
	_, _ = src.AddRoom(ctx, 102, "Double", decimal.NewFromInt(150))
	require.NoError(t, src.Save(ctx, rooms, reservations))
	require.NoError(t, os.Remove(reservations))

	dst := newTestService(t)
	_, err := dst.AddRoom(ctx, 201, "Suite", decimal.NewFromInt(300))
	require.NoError(t, err)

	res, err := dst.Load(ctx, rooms, reservations)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Zero(t, res)
	require.Len(t, dst.Rooms(), 1)
	assert.Equal(t, 201, dst.Rooms()[0].Number)

	require.NoError(t, os.WriteFile(reservations, nil, 0o644))
	res, err = dst.Load(ctx, rooms, reservations)
	require.NoError(t, err)
	assert.Equal(t, recordstore.LoadResult{Loaded: 2}, res)
	assert.Len(t, dst.Rooms(), 3)
}

func TestStrictLoadDropsRoomsOnMalformedReservation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	rooms, reservations := filepath.Join(dir, "rooms.txt"), filepath.Join(dir, "reservations.txt")
	require.NoError(t, os.WriteFile(rooms, []byte("101|Single|100|True\n"), 0o644))
	require.NoError(t, os.WriteFile(reservations, []byte("not-a-reservation\n"), 0o644))

	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), recordstore.WithStrictLoad())
	_, err := svc.Load(ctx, rooms, reservations)
	assert.ErrorIs(t, err, recordstore.ErrMalformedLine)
	assert.Empty(t, svc.Rooms())
	assert.Empty(t, svc.Reservations())
}
