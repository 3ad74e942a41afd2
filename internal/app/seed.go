package app

import (
	"context"
	"log/slog"
)

type seedBook struct {
	title, author, isbn string
	year, stock         int
}

type seedMember struct {
	name, email, phone, address string
}

var demoBooks = []seedBook{
	{"Ikigai: The Japanese Secret to a Long and Happy Life", "Héctor García & Francesc Miralles", "978-602-1201-80-0", 2019, 5},
	{"Bumi Manusia", "Pramoedya Ananta Toer", "978-6024242534", 1980, 3},
	{"Ronggeng Dukuh Paruk", "Ahmad Tohari", "978-6020331904", 1982, 4},
}

// The first entry has a space in its email and is rejected on purpose.
var demoMembers = []seedMember{
	{"Galih Pajriansyah", "Galih Pajriansyah@email.com", "081234567890", "Jl. Cibolang"},
	{"Siti Aminah", "siti.aminah@email.com", "082345678901", "Jl. Sudirman No. 45, Bandung"},
	{"Ahmad Rizki", "ahmad.rizki@email.com", "083456789012", "Jl. Diponegoro No. 78, Surabaya"},
}

// Seed loads the demo catalog and members. Entries that fail validation are
// logged and skipped.
func Seed(ctx context.Context, lib *Library, logger *slog.Logger) {
	for _, b := range demoBooks {
		if _, err := lib.Catalog.AddBook(ctx, b.title, b.author, b.isbn, b.year, b.stock); err != nil {
			logger.WarnContext(ctx, "seed book skipped", "isbn", b.isbn, "error", err.Error())
		}
	}
	for _, m := range demoMembers {
		if _, err := lib.Members.AddMember(ctx, m.name, m.email, m.phone, m.address); err != nil {
			logger.WarnContext(ctx, "seed member skipped", "email", m.email, "error", err.Error())
		}
	}
}
