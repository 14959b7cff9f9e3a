package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := models.NewPaginationMeta(12, 2, 5)
	Success(rec, http.StatusOK, "Products retrieved successfully", []string{"a"}, &meta)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Products retrieved successfully", body["message"])

	m := body["meta"].(map[string]interface{})
	assert.Equal(t, APIVersion, m["version"])
	assert.NotEmpty(t, m["timestamp"])
	pagination := m["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["totalPages"])
}

func TestErrorEnvelopeMapsKind(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperr.Forbidden("Cannot delete admin users"), false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cannot delete admin users", body["message"])
	assert.NotContains(t, body, "errors")
}

func TestErrorDetailGating(t *testing.T) {
	internal := apperr.Internal("query failed", errors.New("dial tcp: refused"))

	rec := httptest.NewRecorder()
	Error(rec, internal, false)
	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "errors", "production responses carry no internal detail")

	rec = httptest.NewRecorder()
	Error(rec, internal, true)
	body = decode(t, rec)
	assert.Contains(t, body["errors"], "refused")
}
