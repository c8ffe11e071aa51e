package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/sealbox/internal/crypto/domain"
)

func testKeyRing(t *testing.T) (*domain.KeyRing, map[string]string) {
	t.Helper()

	keys := make(map[string]string)
	for _, id := range []string{"app", "legacy"} {
		material := make([]byte, 32)
		_, err := rand.Read(material)
		require.NoError(t, err)
		keys[id] = hex.EncodeToString(material)
	}

	ring, err := domain.NewKeyRing(keys, "app")
	require.NoError(t, err)
	return ring, keys
}

func TestKeyHandler_ListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ring, keys := testKeyRing(t)
	handler := NewKeyHandler(ring, slog.New(slog.DiscardHandler))

	router := gin.New()
	router.GET("/v1/keys", handler.ListHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/keys", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp KeyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "app", resp.DefaultKeyID)
	assert.Equal(t, []string{"app", "legacy"}, resp.KeyIDs)

	// Key material never appears in the response
	for _, material := range keys {
		assert.NotContains(t, w.Body.String(), material)
	}
}
