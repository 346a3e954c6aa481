package httpx_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdesk/crewdesk/internal/platform/httpx"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.JSON(rec, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.Error(rec, http.StatusNotFound, "Employee with id 5 not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Employee with id 5 not found"}`, rec.Body.String())
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.FieldErrors(rec, http.StatusBadRequest, map[string]string{"email": "Email is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"email":"Email is required"}}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
	var target struct {
		Name string `json:"name"`
	}
	require.NoError(t, httpx.DecodeJSON(req, &target))
	assert.Equal(t, "Jane", target.Name)
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
	var target map[string]any
	require.ErrorIs(t, httpx.DecodeJSON(req, &target), httpx.ErrEmptyBody)
}
