// internal/rental/handler.go
package rental

import (
	"context"
	"path/filepath"

	"recordbook/internal/console"
)

const moviesFile = "movies.txt"

type Handler struct {
	service Service
	p       *console.Prompter
	dataDir string
}

func NewHandler(service Service, p *console.Prompter, dataDir string) *Handler {
	return &Handler{service: service, p: p, dataDir: dataDir}
}

func (h *Handler) Run(ctx context.Context) error {
	return h.p.Run(ctx, console.Menu{
		Title: "Movie Rental System",
		Items: []console.Item{
			{Label: "Add Movie", Action: h.handleAddMovie},
			{Label: "Register Customer", Action: h.handleRegister},
			{Label: "Rent Movie", Action: h.handleRent},
			{Label: "Return Movie", Action: h.handleReturn},
			{Label: "Display Movies", Action: h.handleMovies},
			{Label: "Display Customers", Action: h.handleCustomers},
			{Label: "Display Rentals", Action: h.handleRentals},
			{Label: "Generate Report", Action: h.handleReport},
			{Label: "Search Movies", Action: h.handleSearch},
			{Label: "Update Customer Info", Action: h.handleUpdateCustomer},
			{Label: "Display Rental History", Action: h.handleHistory},
			{Label: "Filter Movies by Genre", Action: h.handleGenre},
			{Label: "Count Available Movies", Action: h.handleCount},
			{Label: "Export Rental Report", Action: h.handleExport},
			{Label: "Find Movie by ID", Action: h.handleFind},
			{Label: "Save Movies", Action: h.handleSave},
			{Label: "Load Movies", Action: h.handleLoad},
		},
	})
}

func (h *Handler) handleAddMovie(ctx context.Context) error {
	id, err := h.id("Enter movie ID: ")
	if err != nil {
		return err
	}
	title, err := h.p.Line("Enter movie title: ")
	if err != nil {
		return err
	}
	genre, err := h.p.Line("Enter movie genre: ")
	if err != nil {
		return err
	}
	m, err := h.service.AddMovie(ctx, id, title, genre)
	if err != nil {
		return err
	}
	h.p.Printf("Movie added: %s\n", m)
	return nil
}

func (h *Handler) handleRegister(ctx context.Context) error {
	id, err := h.id("Enter customer ID: ")
	if err != nil {
		return err
	}
	name, err := h.p.Line("Enter customer name: ")
	if err != nil {
		return err
	}
	phone, err := h.p.Line("Enter phone number: ")
	if err != nil {
		return err
	}
	c, err := h.service.RegisterCustomer(ctx, id, name, phone)
	if err != nil {
		return err
	}
	h.p.Printf("Customer registered: %s\n", c)
	return nil
}

func (h *Handler) handleRent(ctx context.Context) error {
	customerID, err := h.id("Enter customer ID: ")
	if err != nil {
		return err
	}
	movieID, err := h.id("Enter movie ID: ")
	if err != nil {
		return err
	}
	r, err := h.service.RentMovie(ctx, customerID, movieID)
	if err != nil {
		return err
	}
	h.p.Printf("Movie rented: %s\n", r)
	return nil
}

func (h *Handler) handleReturn(ctx context.Context) error {
	position, err := h.id("Enter rental number to return: ")
	if err != nil {
		return err
	}
	ret, err := h.service.ReturnMovie(ctx, position)
	if err != nil {
		return err
	}
	if ret.LateFee.IsPositive() {
		h.p.Printf("Movie returned: %s. Late fee: $%s\n", ret.Rental.MovieTitle, ret.LateFee.StringFixed(2))
		return nil
	}
	h.p.Printf("Movie returned: %s\n", ret.Rental.MovieTitle)
	return nil
}

func (h *Handler) handleMovies(context.Context) error {
	h.p.Println("Movies:")
	for _, m := range h.service.Movies() {
		h.p.Println(m)
	}
	return nil
}

func (h *Handler) handleCustomers(context.Context) error {
	h.p.Println("Registered Customers:")
	for _, c := range h.service.Customers() {
		h.p.Println(c)
	}
	return nil
}

func (h *Handler) handleRentals(context.Context) error {
	h.p.Println("Current Rentals:")
	for i, r := range h.service.Rentals() {
		h.p.Printf("%d. %s\n", i+1, r)
	}
	return nil
}

func (h *Handler) handleReport(context.Context) error {
	r := h.service.Report()
	h.p.Println("Movie Rental Report:")
	h.p.Printf("Total Movies: %d\n", r.TotalMovies)
	h.p.Printf("Total Customers: %d\n", r.TotalCustomers)
	h.p.Printf("Total Rentals: %d\n", r.TotalRentals)
	return nil
}

func (h *Handler) handleSearch(context.Context) error {
	title, err := h.p.Line("Enter title to search (blank for any): ")
	if err != nil {
		return err
	}
	genre, err := h.p.Line("Enter genre to search (blank for any): ")
	if err != nil {
		return err
	}
	h.p.Println("Search Results:")
	for _, m := range h.service.SearchMovies(title, genre) {
		h.p.Println(m)
	}
	return nil
}

func (h *Handler) handleUpdateCustomer(ctx context.Context) error {
	id, err := h.id("Enter customer ID to update: ")
	if err != nil {
		return err
	}
	name, err := h.p.Line("Enter new name: ")
	if err != nil {
		return err
	}
	phone, err := h.p.Line("Enter new phone number: ")
	if err != nil {
		return err
	}
	c, err := h.service.UpdateCustomer(ctx, id, name, phone)
	if err != nil {
		return err
	}
	h.p.Printf("Updated customer info: %s\n", c)
	return nil
}

func (h *Handler) handleHistory(context.Context) error {
	id, err := h.id("Enter customer ID to view rental history: ")
	if err != nil {
		return err
	}
	rentals := h.service.RentalHistory(id)
	if len(rentals) == 0 {
		h.p.Println("No rental history found for this customer.")
		return nil
	}
	h.p.Printf("Rental History for Customer %d:\n", id)
	for _, r := range rentals {
		h.p.Println(r)
	}
	return nil
}

func (h *Handler) handleGenre(context.Context) error {
	genre, err := h.p.Line("Enter genre to filter: ")
	if err != nil {
		return err
	}
	h.p.Printf("Movies in Genre '%s':\n", genre)
	for _, m := range h.service.MoviesByGenre(genre) {
		h.p.Println(m)
	}
	return nil
}

func (h *Handler) handleCount(context.Context) error {
	h.p.Printf("Total Available Movies: %d\n", h.service.CountAvailable())
	return nil
}

func (h *Handler) handleExport(context.Context) error {
	path, err := h.p.Line("Enter file path to export report: ")
	if err != nil {
		return err
	}
	if err := h.service.ExportReport(path); err != nil {
		return err
	}
	h.p.Println("Rental report exported successfully.")
	return nil
}

func (h *Handler) handleFind(context.Context) error {
	id, err := h.id("Enter movie ID to find: ")
	if err != nil {
		return err
	}
	m, err := h.service.Movie(id)
	if err != nil {
		return err
	}
	h.p.Printf("Found Movie: %s\n", m)
	return nil
}

func (h *Handler) handleSave(ctx context.Context) error {
	if err := h.service.SaveMovies(ctx, filepath.Join(h.dataDir, moviesFile)); err != nil {
		return err
	}
	h.p.Println("Movies saved successfully.")
	return nil
}

func (h *Handler) handleLoad(ctx context.Context) error {
	res, err := h.service.LoadMovies(ctx, filepath.Join(h.dataDir, moviesFile))
	if err != nil {
		return err
	}
	h.p.Printf("Loaded %d movies.\n", res.Loaded)
	return nil
}

func (h *Handler) id(prompt string) (int, error) {
	return h.p.Int(prompt, "Please enter a valid number: ", console.Positive[int])
}
