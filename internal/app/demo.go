package app

import (
	"context"
	"log/slog"

	catalogModels "libraria/internal/catalog/models"
	"libraria/internal/lending/models"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
)

// RunDemo replays the scripted walkthrough against lib: adding books and
// members (with one duplicate each), borrowing, searching, returning, and
// printing statistics, listings and history. lib should be empty. Returns
// the final statistics.
func RunDemo(ctx context.Context, lib *Library, logger *slog.Logger) models.Stats {
	d := demo{ctx: ctx, logger: logger}

	d.section("1. adding books")
	for _, b := range demoBooks {
		book, err := lib.Catalog.AddBook(ctx, b.title, b.author, b.isbn, b.year, b.stock)
		d.result("add book "+b.title, err, "book_id", bookIDOf(book))
	}
	_, err := lib.Catalog.AddBook(ctx, demoBooks[0].title, demoBooks[0].author, demoBooks[0].isbn, demoBooks[0].year, 2)
	d.result("add book with existing ISBN", err)

	d.section("2. adding members")
	for _, m := range demoMembers {
		_, err := lib.Members.AddMember(ctx, m.name, m.email, m.phone, m.address)
		d.result("add member "+m.name, err)
	}
	_, err = lib.Members.AddMember(ctx, demoMembers[1].name, demoMembers[1].email, demoMembers[1].phone, demoMembers[1].address)
	d.result("add member with existing email", err)

	d.section("3. borrowing")
	for _, loan := range []struct {
		member id.MemberID
		book   id.BookID
	}{{1, 1}, {1, 2}, {2, 3}, {3, 1}, {1, 1}} {
		tx, err := lib.Lending.Borrow(ctx, loan.member, loan.book)
		d.result("borrow", err, "member_id", loan.member, "book_id", loan.book, "transaction_id", txIDOf(tx))
	}

	d.section("4. searching")
	found := 0
	for b := range lib.Catalog.SearchByTitle(ctx, "Laskar") {
		found++
		logger.InfoContext(ctx, "search hit", "title", b.Title, "author", b.Author, "available", b.Available, "stock", b.Stock)
	}
	logger.InfoContext(ctx, "search finished", "query", "Laskar", "found", found)

	d.section("5. returning")
	tx, err := lib.Lending.Return(ctx, 1, 1)
	d.result("return", err, "member_id", 1, "book_id", 1, "transaction_id", txIDOf(tx))
	tx, err = lib.Lending.Return(ctx, 2, 1)
	d.result("return book never borrowed", err, "member_id", 2, "book_id", 1, "transaction_id", txIDOf(tx))

	d.section("6. statistics")
	stats := lib.Lending.Statistics(ctx)
	logger.InfoContext(ctx, "library statistics",
		"total_books", stats.TotalBooks,
		"available_books", stats.AvailableBooks,
		"borrowed_books", stats.BorrowedBooks,
		"total_members", stats.TotalMembers,
		"active_members", stats.ActiveMembers,
		"total_transactions", stats.TotalTransactions,
	)

	d.section("7. all books")
	for _, b := range lib.Catalog.ListBooks(ctx) {
		logger.InfoContext(ctx, "book",
			"id", b.ID,
			"title", b.Title,
			"author", b.Author,
			"isbn", b.ISBN,
			"year", b.Year,
			"available", b.Available,
			"stock", b.Stock,
		)
	}

	d.section("8. all members")
	for _, m := range lib.Members.ListMembers(ctx) {
		logger.InfoContext(ctx, "member",
			"id", m.ID,
			"name", m.Name,
			"email", m.Email,
			"phone", m.Phone,
			"borrowed_books", m.BorrowedBooks,
		)
	}

	d.section("9. transaction history")
	for _, t := range lib.Lending.History(ctx) {
		attrs := []any{"id", t.ID, "type", t.Type, "status", t.Status, "timestamp", t.Timestamp}
		if m, err := lib.Members.GetMember(ctx, t.MemberID); err == nil {
			attrs = append(attrs, "member", m.Name)
		}
		if b, err := lib.Catalog.GetBook(ctx, t.BookID); err == nil {
			attrs = append(attrs, "book", b.Title)
		}
		logger.InfoContext(ctx, "transaction", attrs...)
	}

	return stats
}

type demo struct {
	ctx    context.Context
	logger *slog.Logger
}

func (d demo) section(title string) {
	d.logger.InfoContext(d.ctx, "=== "+title+" ===")
}

func (d demo) result(action string, err error, attrs ...any) {
	if err != nil {
		attrs = append(attrs, "error", dErrors.MessageOf(err))
		d.logger.WarnContext(d.ctx, action+" failed", attrs...)
		return
	}
	d.logger.InfoContext(d.ctx, action+" succeeded", attrs...)
}

func bookIDOf(b *catalogModels.Book) id.BookID {
	if b == nil {
		return 0
	}
	return b.ID
}

func txIDOf(tx *models.Transaction) id.TransactionID {
	if tx == nil {
		return 0
	}
	return tx.ID
}
