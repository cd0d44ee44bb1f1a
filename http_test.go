package tide

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteJSON(w, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", NewNotFoundError("users", 1), http.StatusNotFound, `{"error":"tide: users not found (id=1)"}`},
		{"validation", NewValidationError("id", errors.New("bad")), http.StatusBadRequest, `{"error":"tide: invalid id: bad"}`},
		{"internal", errors.New("disk full"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var u user
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ann","email":"a@example.com"}`))
	require.NoError(t, DecodeJSON(r, &u))
	assert.Equal(t, "ann", u.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := DecodeJSON(r, &u)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestParseID(t *testing.T) {
	n, err := ParseID[int64]("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	small, err := ParseID[int32]("7")
	require.NoError(t, err)
	assert.Equal(t, int32(7), small)

	s, err := ParseID[string]("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	for _, bad := range []string{"", " ", "x1", "99999999999999999999"} {
		_, err := ParseID[int64](bad)
		assert.True(t, IsValidationError(err), bad)
	}
	_, err = ParseID[int8]("300")
	assert.True(t, IsValidationError(err))
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	_, err = ParseUUID("not-a-key")
	assert.True(t, IsValidationError(err))
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&per_page=x", nil)
	assert.Equal(t, 3, QueryInt(r, "page", 1))
	assert.Equal(t, 15, QueryInt(r, "per_page", 15))
	assert.Equal(t, 9, QueryInt(r, "missing", 9))
}
