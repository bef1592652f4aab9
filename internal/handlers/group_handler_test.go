package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
	"github.com/yuchengtw/duty-roster-bot/mocks"
)

func newGroupTest(t *testing.T) (*gin.Engine, *mocks.MockGroupRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	dm := mocks.NewMockDataManager(ctrl)
	groupRepo := mocks.NewMockGroupRepo(ctrl)
	dm.EXPECT().Group().Return(groupRepo).AnyTimes()
	dm.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(contract.DataManager) error) error {
			return fn(dm)
		}).AnyTimes()

	h := NewGroups(dm)
	r := gin.New()
	r.GET("/groups", h.List)
	r.POST("/groups", h.Create)
	r.DELETE("/groups/:id", h.Delete)
	return r, groupRepo
}

func TestGroupHandler_List(t *testing.T) {
	r, repo := newGroupTest(t)
	repo.EXPECT().List().Return([]*entity.Group{
		{ID: 1, Name: "Duty Roster", GroupID: "C0DUTYROSTER", IsPreset: true},
	}, nil).Times(1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string][]entity.Group
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["groups"], 1)
	assert.Equal(t, "Duty Roster", body["groups"][0].Name)
}

func TestGroupHandler_Create(t *testing.T) {
	t.Run("creates a new custom group", func(t *testing.T) {
		r, repo := newGroupTest(t)
		repo.EXPECT().GetByGroupID("C0NIGHT").Return(nil, nil).Times(1)
		repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(g *entity.Group) error {
			g.ID = 7
			require.Equal(t, "Night Shift", g.Name)
			require.False(t, g.IsPreset)
			return nil
		}).Times(1)

		req := httptest.NewRequest(http.MethodPost, "/groups",
			strings.NewReader(`{"name":"Night Shift","group_id":"C0NIGHT"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects a duplicate", func(t *testing.T) {
		r, repo := newGroupTest(t)
		repo.EXPECT().GetByGroupID("C0NIGHT").
			Return(&entity.Group{ID: 1, GroupID: "C0NIGHT"}, nil).Times(1)

		req := httptest.NewRequest(http.MethodPost, "/groups",
			strings.NewReader(`{"name":"Night Shift","group_id":"C0NIGHT"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("lookup failure aborts the insert", func(t *testing.T) {
		r, repo := newGroupTest(t)
		repo.EXPECT().GetByGroupID("C0NIGHT").Return(nil, assert.AnError).Times(1)
		// No Create expectation: the transaction must stop at the failed lookup.

		req := httptest.NewRequest(http.MethodPost, "/groups",
			strings.NewReader(`{"name":"Night Shift","group_id":"C0NIGHT"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		r, _ := newGroupTest(t)

		req := httptest.NewRequest(http.MethodPost, "/groups", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGroupHandler_Delete(t *testing.T) {
	t.Run("removes a custom group", func(t *testing.T) {
		r, repo := newGroupTest(t)
		repo.EXPECT().GetByID(int64(7)).Return(&entity.Group{ID: 7}, nil).Times(1)
		repo.EXPECT().Delete(int64(7)).Return(nil).Times(1)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/groups/7", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("refuses to remove a preset", func(t *testing.T) {
		r, repo := newGroupTest(t)
		repo.EXPECT().GetByID(int64(1)).Return(&entity.Group{ID: 1, IsPreset: true}, nil).Times(1)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/groups/1", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("404 on unknown id", func(t *testing.T) {
		r, repo := newGroupTest(t)
		repo.EXPECT().GetByID(int64(42)).Return(nil, nil).Times(1)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/groups/42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
