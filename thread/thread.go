// Package thread builds nested comment trees from flat comment rows.
package thread

import (
	"sort"

	"github.com/google/uuid"

	"pronet/models"
)

// Node is a comment with its resolved author and nested replies.
type Node struct {
	models.Comment
	Author  models.Author `json:"author"`
	Replies []*Node       `json:"replies"`
}

// Build assembles a reply forest from flat rows. Rows whose parent is missing
// from the set are promoted to roots so a deleted ancestor never hides its
// subtree. Roots come newest first, replies oldest first at every depth.
func Build(rows []*Node) []*Node {
	byID := make(map[uuid.UUID]*Node, len(rows))
	for _, n := range rows {
		n.Replies = []*Node{}
		byID[n.ID] = n
	}

	// Walk in reverse so replies land under parents in insertion order.
	for i := len(rows) - 1; i >= 0; i-- {
		n := rows[i]
		if n.ParentCommentID == nil {
			continue
		}
		parent, ok := byID[*n.ParentCommentID]
		if !ok || parent == n {
			continue
		}
		delete(byID, n.ID)
		parent.Replies = append(parent.Replies, n)
	}

	roots := make([]*Node, 0, len(byID))
	for _, n := range byID {
		roots = append(roots, n)
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	for _, r := range roots {
		sortReplies(r)
	}
	return roots
}

func sortReplies(n *Node) {
	sort.SliceStable(n.Replies, func(i, j int) bool {
		return n.Replies[i].CreatedAt.Before(n.Replies[j].CreatedAt)
	})
	for _, r := range n.Replies {
		sortReplies(r)
	}
}

// Count returns the total number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	for _, r := range roots {
		total += 1 + Count(r.Replies)
	}
	return total
}
