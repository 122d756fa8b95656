package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asme-site/pkg/drafts"
	"asme-site/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDraftRouter(store drafts.Store, userID string) *gin.Engine {
	handler := NewDraftHandler(store, 30*time.Second, 7*24*time.Hour, logger.Nop())
	router := setupTestRouter()
	handler.Register(router.Group("/drafts", func(c *gin.Context) {
		c.Set("user_id", userID)
	}))
	return router
}

func doRaw(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDraftHandler_Settings(t *testing.T) {
	router := setupDraftRouter(drafts.NewMemoryStore(), "staff-1")

	w := doRaw(router, http.MethodGet, "/drafts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"autosaveIntervalSeconds":30`)
	assert.Contains(t, w.Body.String(), `"ttlSeconds":604800`)
}

func TestDraftHandler_SaveLoadClear(t *testing.T) {
	store := drafts.NewMemoryStore()
	router := setupDraftRouter(store, "staff-1")

	w := doRaw(router, http.MethodGet, "/drafts/blog-new", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRaw(router, http.MethodPut, "/drafts/blog-new", `{"title":"Borrador","content":"..."}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, found, err := store.Load(context.Background(), "staff-1.blog-new")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"title":"Borrador","content":"..."}`, string(stored))

	w = doRaw(router, http.MethodGet, "/drafts/blog-new", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Borrador","content":"..."}`, w.Body.String())

	w = doRaw(router, http.MethodDelete, "/drafts/blog-new", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRaw(router, http.MethodGet, "/drafts/blog-new", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftHandler_ScopedPerUser(t *testing.T) {
	store := drafts.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "staff-2.blog-new", []byte(`{"title":"ajeno"}`)))

	router := setupDraftRouter(store, "staff-1")
	w := doRaw(router, http.MethodGet, "/drafts/blog-new", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftHandler_RejectsBadInput(t *testing.T) {
	router := setupDraftRouter(drafts.NewMemoryStore(), "staff-1")

	w := doRaw(router, http.MethodPut, "/drafts/blog-new", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRaw(router, http.MethodPut, "/drafts/a:b", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := `{"content":"` + strings.Repeat("x", maxDraftBytes) + `"}`
	w = doRaw(router, http.MethodPut, "/drafts/blog-new", big)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
