package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraria/internal/catalog/service"
	"libraria/internal/catalog/store"
	"libraria/internal/platform/logger"
	"libraria/pkg/testutil"
)

func newCatalogRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(store.New())
	r := chi.NewRouter()
	New(svc, logger.Discard()).Register(r)
	return r
}

func TestAddAndGetBook(t *testing.T) {
	router := newCatalogRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/books", AddBookRequest{
		Title:  "Ikigai",
		Author: "Hector Garcia",
		ISBN:   "978-602-1201-80-0",
		Year:   2019,
		Stock:  5,
	}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	created := testutil.UnmarshalResponse[BookResponse](t, rr)
	require.True(t, created.Success)
	require.NotNil(t, created.Book)
	assert.EqualValues(t, 1, created.Book.ID)
	assert.Equal(t, 5, created.Book.Available)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books/1", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	found := testutil.UnmarshalResponse[BookResponse](t, rr)
	assert.Equal(t, "Ikigai", found.Book.Title)
}

func TestAddBookFailures(t *testing.T) {
	router := newCatalogRouter(t)
	valid := AddBookRequest{Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", ISBN: "978-6024242534", Year: 1980, Stock: 3}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/books", valid))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	t.Run("duplicate isbn", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/books", valid))
		testutil.AssertFailure(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("invalid isbn", func(t *testing.T) {
		bad := valid
		bad.ISBN = "123"
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/books", bad))
		testutil.AssertFailure(t, rr, http.StatusBadRequest, "invalid_input")
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/books", "{"))
		testutil.AssertFailure(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestGetBookFailures(t *testing.T) {
	router := newCatalogRouter(t)

	t.Run("unknown id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books/7", nil))
		testutil.AssertFailure(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books/abc", nil))
		testutil.AssertFailure(t, rr, http.StatusBadRequest, "invalid_input")
	})
}

func TestListAndSearchBooks(t *testing.T) {
	router := newCatalogRouter(t)
	for _, b := range []AddBookRequest{
		{Title: "Laskar Pelangi", Author: "Andrea Hirata", ISBN: "978-9793062792", Year: 2005, Stock: 2},
		{Title: "Ronggeng Dukuh Paruk", Author: "Ahmad Tohari", ISBN: "978-6020331904", Year: 1982, Stock: 4},
	} {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/books", b))
		testutil.AssertStatus(t, rr, http.StatusCreated)
	}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	all := testutil.UnmarshalResponse[BookListResponse](t, rr)
	assert.Equal(t, 2, all.Total)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books?title=laskar", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	found := testutil.UnmarshalResponse[BookListResponse](t, rr)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "Laskar Pelangi", found.Books[0].Title)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/books?title=nothing", nil))
	none := testutil.UnmarshalResponse[BookListResponse](t, rr)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Books)
}
