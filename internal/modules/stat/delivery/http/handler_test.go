package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockStatService struct {
	count int64
	err   error
}

func (m *mockStatService) GetTotalMembers(ctx context.Context) (int64, error) {
	return m.count, m.err
}

func serve(h *StatHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users/count", h.GetTotalMembers)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users/count", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetTotalMembers(t *testing.T) {
	w := serve(NewStatHandler(&mockStatService{count: 42}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_members":42}`, w.Body.String())
}

func TestGetTotalMembersError(t *testing.T) {
	w := serve(NewStatHandler(&mockStatService{err: errors.New("db down")}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
