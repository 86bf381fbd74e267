package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/toggle"
	"pronet/utils"
)

// LikeController manages post likes.
type LikeController struct {
	db *gorm.DB
}

// NewLikeController creates a new LikeController instance.
func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{db: db}
}

type likeRequest struct {
	PostID    uuid.UUID `json:"post_id" binding:"required"`
	ActorID   uuid.UUID `json:"actor_id" binding:"required"`
	ActorType string    `json:"actor_type" binding:"required"`
}

func (l *LikeController) bindLikeRequest(ctx *gin.Context) (*likeRequest, bool) {
	var req likeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return nil, false
	}
	if !models.IsValidActorType(req.ActorType) {
		utils.Error(ctx, http.StatusBadRequest, 40030, "actor_type must be user or business")
		return nil, false
	}
	var count int64
	if err := l.db.Model(&models.Post{}).Where("id = ?", req.PostID).Count(&count).Error; err != nil || count == 0 {
		utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
		return nil, false
	}
	return &req, true
}

// ToggleLike flips the like state for an actor on a post. The first call
// creates an active row; later calls alternate it without deleting.
func (l *LikeController) ToggleLike(ctx *gin.Context) {
	req, ok := l.bindLikeRequest(ctx)
	if !ok {
		return
	}

	outcome, like, err := l.togglePostLike(req.PostID, req.ActorID, req.ActorType)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to toggle like")
		return
	}

	var likeCount int64
	l.db.Model(&models.PostLike{}).Where("post_id = ? AND is_active = ?", req.PostID, true).Count(&likeCount)
	// Refresh the denormalized counter on the post row.
	l.db.Model(&models.Post{}).Where("id = ?", req.PostID).Update("likes", likeCount)

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Success(ctx, gin.H{"liked": outcome.Active, "created": outcome.Created, "like": like, "like_count": likeCount})
}

// postLikeStore adapts the post_likes table to the toggle store.
type postLikeStore struct {
	db        *gorm.DB
	postID    uuid.UUID
	actorID   uuid.UUID
	actorType string
	row       models.PostLike
}

func (s *postLikeStore) Current() (*bool, error) {
	s.row = models.PostLike{}
	err := s.db.Where("post_id = ? AND actor_id = ? AND actor_type = ?", s.postID, s.actorID, s.actorType).
		First(&s.row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s.row.IsActive, nil
}

func (s *postLikeStore) Insert(active bool) error {
	s.row = models.PostLike{PostID: s.postID, ActorID: s.actorID, ActorType: s.actorType, IsActive: active}
	return s.db.Create(&s.row).Error
}

func (s *postLikeStore) SetActive(active bool) error {
	if err := s.db.Model(&s.row).Update("is_active", active).Error; err != nil {
		return err
	}
	s.row.IsActive = active
	return nil
}

func (l *LikeController) togglePostLike(postID, actorID uuid.UUID, actorType string) (toggle.Outcome, *models.PostLike, error) {
	store := &postLikeStore{db: l.db, postID: postID, actorID: actorID, actorType: actorType}
	outcome, err := toggle.Apply(store)
	if err != nil {
		return toggle.Outcome{}, nil, err
	}
	return outcome, &store.row, nil
}

// ListLikers returns the actors who currently like a post, with resolved
// display identities.
func (l *LikeController) ListLikers(ctx *gin.Context) {
	postID, ok := uuidParam(ctx, "post_id")
	if !ok {
		return
	}

	var likes []models.PostLike
	if err := l.db.Where("post_id = ? AND is_active = ?", postID, true).
		Order("updated_at DESC").Find(&likes).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to list likes")
		return
	}

	type likerEntry struct {
		models.PostLike
		Author models.Author `json:"author"`
	}
	entries := make([]likerEntry, 0, len(likes))
	for _, like := range likes {
		entries = append(entries, likerEntry{
			PostLike: like,
			Author:   models.ResolveAuthor(l.db, like.ActorID, like.ActorType),
		})
	}
	utils.Success(ctx, gin.H{"likes": entries, "total": len(entries)})
}

// LikeCount returns the active like count for a post.
func (l *LikeController) LikeCount(ctx *gin.Context) {
	postID, ok := uuidParam(ctx, "post_id")
	if !ok {
		return
	}
	var count int64
	if err := l.db.Model(&models.PostLike{}).Where("post_id = ? AND is_active = ?", postID, true).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to count likes")
		return
	}
	utils.Success(ctx, gin.H{"post_id": postID, "like_count": count})
}

// LikedPosts returns the posts an actor currently likes, newest like first.
func (l *LikeController) LikedPosts(ctx *gin.Context) {
	actorID, err := uuid.Parse(ctx.Query("actor_id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid actor_id")
		return
	}
	actorType := ctx.DefaultQuery("actor_type", models.ActorUser)
	if !models.IsValidActorType(actorType) {
		utils.Error(ctx, http.StatusBadRequest, 40030, "actor_type must be user or business")
		return
	}
	limit, offset := parseLimitOffset(ctx, 20)

	var likes []models.PostLike
	if err := l.db.Where("actor_id = ? AND actor_type = ? AND is_active = ?", actorID, actorType, true).
		Order("updated_at DESC").Offset(offset).Limit(limit).Find(&likes).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to list liked posts")
		return
	}

	posts := make([]models.Post, 0, len(likes))
	for _, like := range likes {
		var post models.Post
		if err := l.db.Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			First(&post, "id = ?", like.PostID).Error; err == nil {
			posts = append(posts, post)
		}
	}
	utils.Success(ctx, gin.H{"posts": posts, "limit": limit, "offset": offset})
}
