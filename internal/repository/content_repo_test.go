package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/claustro-app/claustro-api/internal/models"
)

func TestNewsRepositoryListPinsFirstAndPaginates(t *testing.T) {
	db := setupTestDB(t, &models.News{})
	repo := NewNewsRepository(db)

	now := time.Now()
	older := models.News{Title: "Older", Body: "b", PublishedAt: now.Add(-48 * time.Hour)}
	newer := models.News{Title: "Newer", Body: "b", PublishedAt: now.Add(-time.Hour)}
	pinned := models.News{Title: "Pinned", Body: "b", PublishedAt: now.Add(-72 * time.Hour), IsPinned: true}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&pinned).Error)

	items, total, err := repo.List(context.Background(), ContentFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Equal(t, "Pinned", items[0].Title, "pinned item first despite age")
	require.Equal(t, "Newer", items[1].Title)

	paged, total, err := repo.List(context.Background(), ContentFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
	require.Equal(t, "Older", paged[0].Title)
}

func TestEventRepositoryListUpcoming(t *testing.T) {
	db := setupTestDB(t, &models.Event{})
	repo := NewEventRepository(db)

	now := time.Now()
	endsLater := now.Add(2 * time.Hour)
	past := models.Event{Title: "Past", StartsAt: now.Add(-48 * time.Hour)}
	running := models.Event{Title: "Running", StartsAt: now.Add(-time.Hour), EndsAt: &endsLater}
	future := models.Event{Title: "Future", StartsAt: now.Add(24 * time.Hour)}
	require.NoError(t, db.Create(&past).Error)
	require.NoError(t, db.Create(&running).Error)
	require.NoError(t, db.Create(&future).Error)

	items, total, err := repo.ListUpcoming(context.Background(), now, ContentFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "Running", items[0].Title, "in-progress event counts as upcoming")
	require.Equal(t, "Future", items[1].Title)
}

func TestCallRepositoryListOpen(t *testing.T) {
	db := setupTestDB(t, &models.Call{})
	repo := NewCallRepository(db)

	now := time.Now()
	closed := models.Call{Title: "Closed", Deadline: now.Add(-time.Hour)}
	closing := models.Call{Title: "Closing", Deadline: now.Add(time.Hour)}
	open := models.Call{Title: "Open", Deadline: now.Add(72 * time.Hour)}
	require.NoError(t, db.Create(&closed).Error)
	require.NoError(t, db.Create(&closing).Error)
	require.NoError(t, db.Create(&open).Error)

	items, total, err := repo.ListOpen(context.Background(), now, ContentFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "Closing", items[0].Title, "closest deadline first")
	require.Equal(t, "Open", items[1].Title)
}
