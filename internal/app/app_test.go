package app

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogHandler "libraria/internal/catalog/handler"
	lendingHandler "libraria/internal/lending/handler"
	"libraria/internal/lending/models"
	lendingService "libraria/internal/lending/service"
	memberHandler "libraria/internal/membership/handler"
	"libraria/internal/platform/logger"
	"libraria/internal/platform/metrics"
	"libraria/internal/platform/middleware"
	"libraria/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	lib := NewLibrary(logger.Discard(), m)
	return NewRouter(lib, logger.Discard(), m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func TestLendingOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	testutil.Given(t, "a book with one copy and a member", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/books", catalogHandler.AddBookRequest{
			Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", ISBN: "978-6024242534", Year: 1980, Stock: 1,
		}))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members", memberHandler.AddMemberRequest{
			Name: "Siti Aminah", Email: "siti.aminah@email.com", Phone: "082345678901",
		}))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		loan := lendingHandler.LoanRequest{MemberID: 1, BookID: 1}

		testutil.When(t, "the member borrows it", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/loans/borrow", loan))

			testutil.Then(t, "the loan is recorded and the book is out", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusCreated)
				assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

				book := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books/1", nil))
				assert.Equal(t, 0, testutil.UnmarshalResponse[catalogHandler.BookResponse](t, book).Book.Available)
			})
		})

		testutil.When(t, "the member returns it", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/loans/return", loan))

			testutil.Then(t, "the log holds both entries", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusCreated)
				history := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/members/1/transactions", nil))
				resp := testutil.UnmarshalResponse[lendingHandler.TransactionListResponse](t, history)
				require.Equal(t, 2, resp.Total)
				assert.Equal(t, models.TypeReturn, resp.Transactions[1].Type)
			})
		})

		testutil.When(t, "returning a book that is not held", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/loans/return", loan))

			testutil.Then(t, "the request conflicts", func(t *testing.T) {
				testutil.AssertFailure(t, rr, http.StatusConflict, "conflict")
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/stats", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Contains(t, rr.Body.String(), "libraria_http_request_duration_seconds")
}

func TestNewLibraryAppliesLendingOptions(t *testing.T) {
	lib := NewLibrary(logger.Discard(), nil, lendingService.WithTxTimeout(50*time.Millisecond))
	ctx := context.Background()

	book, err := lib.Catalog.AddBook(ctx, "Laskar Pelangi", "Andrea Hirata", "978-9793062792", 2005, 1)
	require.NoError(t, err)
	member, err := lib.Members.AddMember(ctx, "Siti Aminah", "siti.aminah@email.com", "082345678901", "")
	require.NoError(t, err)

	tx, err := lib.Lending.Borrow(ctx, member.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TypeBorrow, tx.Type)
}

func TestSeed(t *testing.T) {
	lib := NewLibrary(logger.Discard(), nil)
	Seed(context.Background(), lib, logger.Discard())

	stats := lib.Lending.Statistics(context.Background())
	assert.Equal(t, 12, stats.TotalBooks)
	assert.Equal(t, 2, stats.TotalMembers)
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	lib := NewLibrary(logger.Discard(), nil)

	stats := RunDemo(context.Background(), lib, logger.NewWithWriter(&out, 0, "text"))

	assert.Equal(t, models.Stats{
		TotalBooks:        12,
		AvailableBooks:    10,
		BorrowedBooks:     2,
		TotalMembers:      2,
		ActiveMembers:     2,
		TotalTransactions: 4,
	}, stats)
	assert.Contains(t, out.String(), "add book with existing ISBN failed")
	assert.Contains(t, out.String(), "return book never borrowed failed")
	assert.Contains(t, out.String(), "=== 9. transaction history ===")
}
