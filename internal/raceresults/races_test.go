package raceresults

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraria/internal/platform/logger"
	"libraria/pkg/testutil"
)

func TestGroupByCountry(t *testing.T) {
	grouped := GroupByCountry(Season())

	require.Len(t, grouped, 2)
	require.Len(t, grouped["Italy"], 3)
	assert.Equal(t, []string{"Losail", "De Jerez", "Mugello"}, circuits(grouped["Italy"]))
	assert.Equal(t, "Crutchlow", grouped["UK"][0].Winner.LastName)
}

func TestGroupByName(t *testing.T) {
	grouped := GroupByName(Season())

	require.Len(t, grouped, 3)
	require.Len(t, grouped["Andrea Dovizioso"], 2)
	assert.Equal(t, NameEntry{Circuit: "Mugello", Location: "Italy", Country: "Italy"}, grouped["Andrea Dovizioso"][1])
	assert.Equal(t, "Spain", grouped["Valentino Rossi"][0].Location)
}

func circuits(entries []CountryEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Circuit)
	}
	return out
}

func newRaceRouter() http.Handler {
	r := chi.NewRouter()
	NewHandler(Season(), logger.Discard()).Register(r)
	return r
}

func TestHandler(t *testing.T) {
	router := newRaceRouter()

	t.Run("full list", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		races := testutil.UnmarshalResponse[[]Race](t, rr)
		assert.Len(t, *races, 4)
	})

	t.Run("by country", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/country", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		grouped := testutil.UnmarshalResponse[map[string][]CountryEntry](t, rr)
		assert.Len(t, (*grouped)["Italy"], 3)
	})

	t.Run("by name", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/name", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		grouped := testutil.UnmarshalResponse[map[string][]NameEntry](t, rr)
		assert.Len(t, (*grouped)["Cal Crutchlow"], 1)
	})

	t.Run("unknown path", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/riders", nil))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		body := testutil.UnmarshalResponse[map[string]string](t, rr)
		assert.Equal(t, "Bad Request", (*body)["error"])
	})
}
