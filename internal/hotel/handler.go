// internal/hotel/handler.go
package hotel

import (
	"context"
	"errors"
	"path/filepath"

	"recordbook/internal/console"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
)

const (
	roomsFile        = "rooms.txt"
	reservationsFile = "reservations.txt"
)

type Handler struct {
	service Service
	p       *console.Prompter
	dataDir string
}

// NewHandler builds the console handler. Save and load use files under dataDir.
func NewHandler(service Service, p *console.Prompter, dataDir string) *Handler {
	return &Handler{service: service, p: p, dataDir: dataDir}
}

func (h *Handler) Run(ctx context.Context) error {
	return h.p.Run(ctx, console.Menu{
		Title: "Hotel Reservation System",
		Items: []console.Item{
			{Label: "Add Room", Action: h.handleAddRoom},
			{Label: "Update Room", Action: h.handleUpdateRoom},
			{Label: "Display Rooms", Action: h.handleRooms},
			{Label: "Make Reservation", Action: h.handleReserve},
			{Label: "Cancel Reservation", Action: h.handleCancel},
			{Label: "Modify Reservation", Action: h.handleModify},
			{Label: "Display Reservations", Action: h.handleReservations},
			{Label: "Add Customer", Action: h.handleAddCustomer},
			{Label: "Search Available Rooms", Action: h.handleAvailable},
			{Label: "Generate Report", Action: h.handleReport},
			{Label: "Display Customer Details", Action: h.handleCustomer},
			{Label: "Display Room Details", Action: h.handleRoom},
			{Label: "Save Data", Action: h.handleSave},
			{Label: "Load Data", Action: h.handleLoad},
		},
	})
}

func (h *Handler) handleAddRoom(ctx context.Context) error {
	number, err := h.roomNumber("Enter room number: ")
	if err != nil {
		return err
	}
	roomType, err := h.p.Line("Enter room type: ")
	if err != nil {
		return err
	}
	price, err := h.price("Enter price per night: ")
	if err != nil {
		return err
	}
	if _, err := h.service.AddRoom(ctx, number, roomType, price); err != nil {
		return err
	}
	h.p.Printf("Room %d added successfully.\n", number)
	return nil
}

func (h *Handler) handleUpdateRoom(ctx context.Context) error {
	number, err := h.roomNumber("Enter room number to update: ")
	if err != nil {
		return err
	}
	roomType, err := h.p.Line("Enter new room type: ")
	if err != nil {
		return err
	}
	price, err := h.price("Enter new price per night: ")
	if err != nil {
		return err
	}
	if _, err := h.service.UpdateRoom(ctx, number, roomType, price); err != nil {
		return err
	}
	h.p.Printf("Room %d updated successfully.\n", number)
	return nil
}

func (h *Handler) handleRooms(context.Context) error {
	h.p.Println("Rooms:")
	for _, r := range h.service.Rooms() {
		h.p.Println(r)
	}
	return nil
}

func (h *Handler) handleReserve(ctx context.Context) error {
	guest, err := h.p.Line("Enter guest name: ")
	if err != nil {
		return err
	}
	number, err := h.roomNumber("Enter room number: ")
	if err != nil {
		return err
	}
	start, err := h.p.Date("Enter start date (yyyy-mm-dd): ", "Please enter a valid start date: ")
	if err != nil {
		return err
	}
	end, err := h.p.Date("Enter end date (yyyy-mm-dd): ", "Please enter a valid end date: ")
	if err != nil {
		return err
	}

	res, err := h.service.MakeReservation(ctx, guest, number, start, end)
	if err != nil {
		return err
	}
	h.p.Printf("Reservation made: %s\n", res)
	return nil
}

func (h *Handler) handleCancel(ctx context.Context) error {
	guest, err := h.p.Line("Enter guest name: ")
	if err != nil {
		return err
	}
	number, err := h.roomNumber("Enter room number: ")
	if err != nil {
		return err
	}
	if err := h.service.CancelReservation(ctx, guest, number); err != nil {
		return err
	}
	h.p.Printf("Reservation for %s in room %d canceled successfully.\n", guest, number)
	return nil
}

func (h *Handler) handleModify(ctx context.Context) error {
	guest, err := h.p.Line("Enter guest name: ")
	if err != nil {
		return err
	}
	number, err := h.roomNumber("Enter room number: ")
	if err != nil {
		return err
	}
	start, err := h.p.Date("Enter new start date (yyyy-mm-dd): ", "Please enter a valid start date: ")
	if err != nil {
		return err
	}
	end, err := h.p.Date("Enter new end date (yyyy-mm-dd): ", "Please enter a valid end date: ")
	if err != nil {
		return err
	}

	res, err := h.service.ModifyReservation(ctx, guest, number, start, end)
	if err != nil {
		return err
	}
	h.p.Printf("Reservation modified: %s\n", res)
	return nil
}

func (h *Handler) handleReservations(context.Context) error {
	h.p.Println("Current Reservations:")
	for _, r := range h.service.Reservations() {
		h.p.Println(r)
	}
	return nil
}

func (h *Handler) handleAddCustomer(ctx context.Context) error {
	name, err := h.p.Line("Enter customer name: ")
	if err != nil {
		return err
	}
	phone, err := h.p.Line("Enter phone number: ")
	if err != nil {
		return err
	}
	email, err := h.p.Line("Enter email: ")
	if err != nil {
		return err
	}
	c, err := h.service.AddCustomer(ctx, name, phone, email)
	if err != nil {
		return err
	}
	h.p.Printf("Customer added: %s\n", c)
	return nil
}

func (h *Handler) handleAvailable(context.Context) error {
	start, err := h.p.Date("Enter start date (yyyy-mm-dd): ", "Please enter a valid start date: ")
	if err != nil {
		return err
	}
	end, err := h.p.Date("Enter end date (yyyy-mm-dd): ", "Please enter a valid end date: ")
	if err != nil {
		return err
	}
	h.p.Println("Available Rooms for the selected dates:")
	for _, r := range h.service.AvailableRooms(start, end) {
		h.p.Println(r)
	}
	return nil
}

func (h *Handler) handleReport(context.Context) error {
	r := h.service.Report()
	h.p.Println("Hotel Report:")
	h.p.Printf("Total Rooms: %d\n", r.TotalRooms)
	h.p.Printf("Total Reservations: %d\n", r.TotalReservations)
	h.p.Printf("Total Customers: %d\n", r.TotalCustomers)
	h.p.Printf("Booked Revenue: %s\n", money(r.Revenue))
	h.p.Println("Current Reservations:")
	rows := make([]table.Row, 0, len(r.Reservations))
	for _, res := range r.Reservations {
		rows = append(rows, table.Row{
			res.Guest,
			res.Room,
			res.Start.Format(console.DateLayout),
			res.End.Format(console.DateLayout),
			res.Nights(),
			money(res.TotalPrice()),
		})
	}
	h.p.Table(table.Row{"Guest", "Room", "From", "To", "Nights", "Total"}, rows, "No reservations.")
	return nil
}

func (h *Handler) handleCustomer(context.Context) error {
	name, err := h.p.Line("Enter customer name to view details: ")
	if err != nil {
		return err
	}
	c, err := h.service.Customer(name)
	if err != nil {
		return err
	}
	h.p.Printf("Customer Details: %s\n", c)
	return nil
}

func (h *Handler) handleRoom(context.Context) error {
	number, err := h.roomNumber("Enter room number to view details: ")
	if err != nil {
		return err
	}
	r, err := h.service.Room(number)
	if err != nil {
		return err
	}
	h.p.Println(r)
	return nil
}

func (h *Handler) handleSave(ctx context.Context) error {
	if err := h.service.Save(ctx, h.path(roomsFile), h.path(reservationsFile)); err != nil {
		return err
	}
	h.p.Println("Data saved successfully.")
	return nil
}

func (h *Handler) handleLoad(ctx context.Context) error {
	res, err := h.service.Load(ctx, h.path(roomsFile), h.path(reservationsFile))
	if err != nil {
		return err
	}
	h.p.Printf("Loaded %d records.\n", res.Loaded)
	return nil
}

func (h *Handler) roomNumber(prompt string) (int, error) {
	return h.p.Int(prompt, "Please enter a valid room number: ", console.Positive[int])
}

func (h *Handler) price(prompt string) (decimal.Decimal, error) {
	return console.Ask(h.p, prompt, "Please enter a valid price: ", func(s string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, err
		}
		if !d.IsPositive() {
			return decimal.Zero, errors.New("price must be positive")
		}
		return d, nil
	})
}

func (h *Handler) path(name string) string {
	return filepath.Join(h.dataDir, name)
}
