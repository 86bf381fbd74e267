package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pronet/models"
)

func ranked(tags []string, likes int64, at time.Time) models.RankedPost {
	return models.RankedPost{
		Post:      models.Post{ID: uuid.New(), Tags: tags, CreatedAt: at},
		LikeCount: likes,
	}
}

func ts(sec int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, sec, 0, time.UTC)
}

func TestMatchCount(t *testing.T) {
	assert.Equal(t, 2, MatchCount([]string{"go", "db", "web"}, []string{"go", "db", "ml"}))
	assert.Equal(t, 0, MatchCount(nil, []string{"go"}))
	assert.Equal(t, 0, MatchCount([]string{"go"}, nil))
	assert.Equal(t, 1, MatchCount([]string{"go", "go", "go"}, []string{"go", "go"}), "duplicates count once")
}

func TestRankRelevantOrdersByMatchThenRecency(t *testing.T) {
	interests := []string{"rust", "ml"}
	p1 := ranked([]string{"rust", "ml"}, 0, ts(10))
	p2 := ranked([]string{"rust"}, 0, ts(20))
	p3 := ranked([]string{"cooking"}, 0, ts(30))

	out := Rank([]models.RankedPost{p3, p2, p1}, interests, SortRelevant)

	require.Len(t, out, 3)
	assert.Equal(t, p1.ID, out[0].ID)
	assert.Equal(t, 2, out[0].MatchCount)
	assert.Equal(t, p2.ID, out[1].ID)
	assert.Equal(t, 1, out[1].MatchCount)
	assert.Equal(t, p3.ID, out[2].ID)
	assert.Equal(t, 0, out[2].MatchCount)
}

func TestRankRelevantTiesBreakByRecency(t *testing.T) {
	interests := []string{"go"}
	older := ranked([]string{"go"}, 0, ts(1))
	newer := ranked([]string{"go"}, 0, ts(2))

	out := Rank([]models.RankedPost{older, newer}, interests, "")

	assert.Equal(t, newer.ID, out[0].ID)
	assert.Equal(t, older.ID, out[1].ID)
}

func TestRankTopOrdersByLikes(t *testing.T) {
	hot := ranked([]string{"x"}, 9, ts(1))
	cold := ranked([]string{"x"}, 1, ts(50))

	out := Rank([]models.RankedPost{cold, hot}, nil, SortTop)

	assert.Equal(t, hot.ID, out[0].ID)
	assert.Equal(t, cold.ID, out[1].ID)
}

func TestRankLatestOrdersByRecency(t *testing.T) {
	old := ranked(nil, 99, ts(1))
	recent := ranked(nil, 0, ts(9))

	out := Rank([]models.RankedPost{old, recent}, nil, SortLatest)

	assert.Equal(t, recent.ID, out[0].ID)
}

func TestRankEmptyInterestsFallsBackToRecency(t *testing.T) {
	a := ranked([]string{"go"}, 0, ts(5))
	b := ranked([]string{"rust"}, 0, ts(8))

	out := Rank([]models.RankedPost{a, b}, nil, SortRelevant)

	assert.Equal(t, b.ID, out[0].ID)
	assert.Zero(t, out[0].MatchCount)
}

func TestPage(t *testing.T) {
	posts := make([]models.RankedPost, 8)
	for i := range posts {
		posts[i] = ranked(nil, 0, ts(i))
	}

	assert.Len(t, Page(posts, 0, 0), DefaultLimit)
	assert.Len(t, Page(posts, 3, 6), 2)
	assert.Empty(t, Page(posts, 3, 100))
	assert.Len(t, Page(posts, -1, -1), DefaultLimit)
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, SortTop, NormalizeSort(" Top "))
	assert.Equal(t, SortLatest, NormalizeSort("latest"))
	assert.Equal(t, SortRelevant, NormalizeSort("bogus"))
	assert.Equal(t, SortRelevant, NormalizeSort(""))
}
