package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"desideri.com/pugliaclub/internal/entity"
	actionDto "desideri.com/pugliaclub/internal/modules/action/dto"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockActionService struct {
	SubmitFunc func(ctx context.Context, userID uuid.UUID, req actionDto.SubmitActionRequest) (*actionDto.SubmitActionResponse, error)
	VerifyFunc func(ctx context.Context, actionID uuid.UUID, status string) (*actionDto.VerifyResponse, error)
}

func (m *mockActionService) ListTypes(ctx context.Context) ([]entity.ActionType, error) {
	return []entity.ActionType{{ID: "like_post", Name: "Like", Points: 5, IsActive: true}}, nil
}

func (m *mockActionService) Submit(ctx context.Context, userID uuid.UUID, req actionDto.SubmitActionRequest) (*actionDto.SubmitActionResponse, error) {
	return m.SubmitFunc(ctx, userID, req)
}

func (m *mockActionService) History(ctx context.Context, userID uuid.UUID) ([]entity.UserAction, error) {
	return []entity.UserAction{}, nil
}

func (m *mockActionService) ListPending(ctx context.Context) ([]actionDto.PendingActionResponse, error) {
	return []actionDto.PendingActionResponse{}, nil
}

func (m *mockActionService) Verify(ctx context.Context, actionID uuid.UUID, status string) (*actionDto.VerifyResponse, error) {
	return m.VerifyFunc(ctx, actionID, status)
}

func (m *mockActionService) CountPending(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockActionService) CountApproved(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockActionService) CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func setupRouter(h *ActionHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	})
	r.GET("/actions/types", h.ListTypes)
	r.POST("/actions/submit", h.Submit)
	r.GET("/actions/history", h.History)
	r.PUT("/admin/actions/:id/verify", h.Verify)
	return r
}

func TestSubmit(t *testing.T) {
	userID := uuid.New()
	actionID := uuid.New()
	var got actionDto.SubmitActionRequest

	svc := &mockActionService{
		SubmitFunc: func(ctx context.Context, id uuid.UUID, req actionDto.SubmitActionRequest) (*actionDto.SubmitActionResponse, error) {
			assert.Equal(t, userID, id)
			got = req
			return &actionDto.SubmitActionResponse{
				Message:            "ok",
				ActionID:           actionID,
				VerificationStatus: entity.StatusPending,
				PointsPending:      15,
			}, nil
		},
	}
	r := setupRouter(NewActionHandler(svc), userID)

	t.Run("json body", func(t *testing.T) {
		body := `{"action_type_id":"share_story","description":"sunset","submission_url":"https://instagram.com/p/1"}`
		req := httptest.NewRequest(http.MethodPost, "/actions/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "share_story", got.ActionTypeID)

		var res actionDto.SubmitActionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, actionID, res.ActionID)
		assert.Equal(t, 15, res.PointsPending)
	})

	t.Run("form body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/actions/submit", strings.NewReader("action_type_id=like_post"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "like_post", got.ActionTypeID)
	})

	t.Run("missing type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/actions/submit", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
	})
}

func TestSubmit_LimitReached(t *testing.T) {
	svc := &mockActionService{
		SubmitFunc: func(ctx context.Context, id uuid.UUID, req actionDto.SubmitActionRequest) (*actionDto.SubmitActionResponse, error) {
			return nil, apperror.BadRequest("Daily limit reached for this action")
		},
	}
	r := setupRouter(NewActionHandler(svc), uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/actions/submit", strings.NewReader(`{"action_type_id":"like_post"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Daily limit reached for this action"}`, w.Body.String())
}

func TestVerify(t *testing.T) {
	actionID := uuid.New()
	svc := &mockActionService{
		VerifyFunc: func(ctx context.Context, id uuid.UUID, status string) (*actionDto.VerifyResponse, error) {
			assert.Equal(t, actionID, id)
			return &actionDto.VerifyResponse{Message: "Action approved successfully", Status: status}, nil
		},
	}
	r := setupRouter(NewActionHandler(svc), uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/admin/actions/"+actionID.String()+"/verify?status=approved", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Action approved successfully","status":"approved"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/admin/actions/not-a-uuid/verify?status=approved", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTypes(t *testing.T) {
	r := setupRouter(NewActionHandler(&mockActionService{}), uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/actions/types", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var types []entity.ActionType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	require.Len(t, types, 1)
	assert.Equal(t, "like_post", types[0].ID)
}
