package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
)

func TestDeliveryRepo_RecordAndList(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newDeliveryRepo(db.conn)

	sent := time.Date(2025, time.December, 8, 1, 0, 0, 0, time.UTC)
	delivery := &entity.Delivery{
		GroupID: "C0DUTYROSTER",
		Kind:    "weekly",
		Duty:    "Chen Yi-Chun",
		OK:      true,
		SentAt:  sent,
	}
	require.NoError(t, repo.Record(delivery))
	require.NotZero(t, delivery.ID)

	failed := &entity.Delivery{
		GroupID: "C0DUTYROSTER",
		Kind:    "general",
		OK:      false,
		Error:   "channel_not_found",
		SentAt:  sent.Add(time.Hour),
	}
	require.NoError(t, repo.Record(failed))

	deliveries, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, deliveries, 2)

	// Most recent first
	assert.Equal(t, "general", deliveries[0].Kind)
	assert.False(t, deliveries[0].OK)
	assert.Equal(t, "channel_not_found", deliveries[0].Error)

	assert.Equal(t, "weekly", deliveries[1].Kind)
	assert.Equal(t, "Chen Yi-Chun", deliveries[1].Duty)
	assert.True(t, deliveries[1].OK)
}

func TestDeliveryRepo_ListRecentHonorsLimit(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newDeliveryRepo(db.conn)

	base := time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(&entity.Delivery{
			GroupID: "C0DUTYROSTER",
			Kind:    "weekly",
			Duty:    fmt.Sprintf("A%d", i),
			OK:      true,
			SentAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	deliveries, err := repo.ListRecent(3)
	require.NoError(t, err)
	require.Len(t, deliveries, 3)
	assert.Equal(t, "A4", deliveries[0].Duty)
}
