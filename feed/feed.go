// Package feed ranks posts against a user's interests.
package feed

import (
	"sort"
	"strings"

	"pronet/models"
)

// Sort modes accepted by the interest feed.
const (
	SortRelevant = "relevant"
	SortTop      = "top"
	SortLatest   = "latest"
)

// DefaultLimit applies when the caller does not ask for a page size.
const DefaultLimit = 5

// NormalizeSort maps unknown or empty sort names to the relevant ordering.
func NormalizeSort(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortTop:
		return SortTop
	case SortLatest:
		return SortLatest
	default:
		return SortRelevant
	}
}

// MatchCount counts distinct interests present in the post tags. Duplicate
// tags or interests never inflate the score.
func MatchCount(tags, interests []string) int {
	if len(tags) == 0 || len(interests) == 0 {
		return 0
	}
	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[t] = struct{}{}
	}
	seen := make(map[string]struct{}, len(interests))
	count := 0
	for _, in := range interests {
		if _, dup := seen[in]; dup {
			continue
		}
		seen[in] = struct{}{}
		if _, ok := tagSet[in]; ok {
			count++
		}
	}
	return count
}

// Rank scores each post against the interests and orders the slice in place.
// All sort modes break ties by recency, newest first.
func Rank(posts []models.RankedPost, interests []string, sortMode string) []models.RankedPost {
	for i := range posts {
		posts[i].MatchCount = MatchCount(posts[i].Tags, interests)
	}
	switch NormalizeSort(sortMode) {
	case SortTop:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].LikeCount != posts[j].LikeCount {
				return posts[i].LikeCount > posts[j].LikeCount
			}
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	case SortLatest:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].MatchCount != posts[j].MatchCount {
				return posts[i].MatchCount > posts[j].MatchCount
			}
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
	return posts
}

// Page slices a ranked list. A non-positive limit falls back to DefaultLimit
// and a negative offset is treated as zero.
func Page(posts []models.RankedPost, limit, offset int) []models.RankedPost {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(posts) {
		return []models.RankedPost{}
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}
