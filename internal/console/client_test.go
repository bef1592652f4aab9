package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	date := time.Date(2025, time.December, 17, 9, 0, 0, 0, time.FixedZone("UTC+8", 8*60*60))

	full, err := BuildURL("http://localhost:3000/cron/announce", TriggerParams{
		Manual:    true,
		Type:      "weekly",
		Date:      date,
		GroupID:   "C0DUTYROSTER",
		Shift:     -1,
		StaffList: []string{"A0", "A1"},
	})
	require.NoError(t, err)

	u, err := url.Parse(full)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "true", q.Get("manual"))
	assert.Equal(t, "weekly", q.Get("type"))
	assert.Equal(t, "2025-12-17T09:00", q.Get("date"))
	assert.Equal(t, "C0DUTYROSTER", q.Get("groupId"))
	assert.Equal(t, "-1", q.Get("shift"))
	assert.Equal(t, "A0,A1", q.Get("staffList"))
	assert.Empty(t, q.Get("person"))
}

func TestClient_Trigger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer topsecret", r.Header.Get("Authorization"))
		assert.Equal(t, "weekly", r.URL.Query().Get("type"))

		json.NewEncoder(w).Encode(TriggerResponse{
			Success:   true,
			Message:   "sent",
			Duty:      "A6",
			Timestamp: "2025-12-08T08:30:00+08:00",
		})
	}))
	defer srv.Close()

	resp, err := NewClient().Trigger(context.Background(), srv.URL, "topsecret",
		TriggerParams{Type: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, "A6", resp.Duty)
}

func TestClient_Trigger_ManualSkipsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.URL.Query().Get("manual"))
		json.NewEncoder(w).Encode(TriggerResponse{Success: true})
	}))
	defer srv.Close()

	_, err := NewClient().Trigger(context.Background(), srv.URL, "topsecret",
		TriggerParams{Manual: true, Type: "weekly"})
	require.NoError(t, err)
}

func TestClient_Trigger_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(TriggerResponse{Success: false, Message: "dispatch failed"})
	}))
	defer srv.Close()

	resp, err := NewClient().Trigger(context.Background(), srv.URL, "topsecret",
		TriggerParams{Type: "weekly"})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Contains(t, err.Error(), "dispatch failed")
}
