package thread

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pronet/models"
)

func node(id uuid.UUID, parent *uuid.UUID, at time.Time) *Node {
	return &Node{Comment: models.Comment{ID: id, ParentCommentID: parent, CreatedAt: at}}
}

func ts(sec int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, sec, 0, time.UTC)
}

func TestBuildNestsRepliesAndPromotesOrphans(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	d := uuid.New()
	missing := uuid.New()

	rows := []*Node{
		node(a, nil, ts(10)),
		node(b, &a, ts(20)),
		node(c, &b, ts(5)),
		node(d, &missing, ts(15)),
	}

	roots := Build(rows)

	require.Len(t, roots, 2)
	assert.Equal(t, d, roots[0].ID, "orphan promoted to root, newest first")
	assert.Equal(t, a, roots[1].ID)

	require.Len(t, roots[1].Replies, 1)
	assert.Equal(t, b, roots[1].Replies[0].ID)
	require.Len(t, roots[1].Replies[0].Replies, 1)
	assert.Equal(t, c, roots[1].Replies[0].Replies[0].ID)

	assert.Equal(t, len(rows), Count(roots), "every row appears exactly once")
}

func TestBuildRootOrderNewestFirst(t *testing.T) {
	r1 := node(uuid.New(), nil, ts(1))
	r2 := node(uuid.New(), nil, ts(2))
	r3 := node(uuid.New(), nil, ts(3))

	roots := Build([]*Node{r1, r2, r3})

	require.Len(t, roots, 3)
	assert.Equal(t, r3.ID, roots[0].ID)
	assert.Equal(t, r2.ID, roots[1].ID)
	assert.Equal(t, r1.ID, roots[2].ID)
}

func TestBuildRepliesOldestFirstAtEveryDepth(t *testing.T) {
	root := uuid.New()
	late := uuid.New()
	early := uuid.New()
	grandLate := uuid.New()
	grandEarly := uuid.New()

	rows := []*Node{
		node(root, nil, ts(0)),
		node(late, &root, ts(30)),
		node(early, &root, ts(10)),
		node(grandLate, &early, ts(40)),
		node(grandEarly, &early, ts(20)),
	}

	roots := Build(rows)

	require.Len(t, roots, 1)
	replies := roots[0].Replies
	require.Len(t, replies, 2)
	assert.Equal(t, early, replies[0].ID)
	assert.Equal(t, late, replies[1].ID)

	grands := replies[0].Replies
	require.Len(t, grands, 2)
	assert.Equal(t, grandEarly, grands[0].ID)
	assert.Equal(t, grandLate, grands[1].ID)
}

func TestBuildSelfParentBecomesRoot(t *testing.T) {
	id := uuid.New()
	n := node(id, &id, ts(1))

	roots := Build([]*Node{n})

	require.Len(t, roots, 1)
	assert.Equal(t, id, roots[0].ID)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildEmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]*Node{}))
}
