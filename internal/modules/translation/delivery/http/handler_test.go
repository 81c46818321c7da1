package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	translationRepo "desideri.com/pugliaclub/internal/modules/translation/repository"
	translationService "desideri.com/pugliaclub/internal/modules/translation/service"
	"desideri.com/pugliaclub/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	h := NewTranslationHandler(translationService.NewTranslationService(translationRepo.NewTranslationRepository(db), nil, nil))

	r := gin.New()
	r.GET("/translations", h.GetTranslations)
	r.GET("/admin/translations", h.List)
	r.POST("/admin/translations", h.Upsert)
	r.DELETE("/admin/translations/:key", h.Delete)
	return r
}

func TestTranslationsEndpoints(t *testing.T) {
	r := setupRouter(t)

	t.Run("english map", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/translations?language=en", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Prizes", body["prizes"])
	})

	t.Run("unsupported language", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/translations?language=fr", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"detail":"Unsupported language"}`, w.Body.String())
	})

	t.Run("upsert then delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/translations",
			strings.NewReader(`{"key":"welcome_banner","italian":"Benvenuti","english":"Welcome","category":"home"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/translations", nil))
		assert.Contains(t, w.Body.String(), `"welcome_banner":"Benvenuti"`)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/translations/welcome_banner", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/translations/welcome_banner", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/translations", strings.NewReader(`{"key":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
