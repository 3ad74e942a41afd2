package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "libraria/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error hides its cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("map corrupted"))

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "internal_error", body["error"])
		assert.Equal(t, "internal server error", body["message"])
	})

	t.Run("invalid input includes message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "title must not be empty"))

		require.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "invalid_input", body["error"])
		assert.Equal(t, "title must not be empty", body["message"])
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(dErrors.CodeNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(dErrors.CodeConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(dErrors.CodeInvariantViolation))
	assert.Equal(t, http.StatusBadRequest, StatusFor(dErrors.CodeValidation))
}

func TestWriteJSON_EmbeddedResult(t *testing.T) {
	type bookResponse struct {
		Result
		Book map[string]string `json:"book,omitempty"`
	}

	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, bookResponse{
		Result: OK("book added"),
		Book:   map[string]string{"title": "Bumi Manusia"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"book added","book":{"title":"Bumi Manusia"}}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	require.NoError(t, DecodeJSON(strings.NewReader(`{"title":"x"}`), &dst))
	assert.Equal(t, "x", dst.Title)

	err := DecodeJSON(strings.NewReader(`{"nope":1}`), &dst)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
