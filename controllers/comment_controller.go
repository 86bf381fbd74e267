package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/thread"
	"pronet/toggle"
	"pronet/utils"
)

// CommentController manages threaded comments and comment likes.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// CreateComment adds a comment or reply on a post by a user or business actor.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		PostID          uuid.UUID  `json:"post_id" binding:"required"`
		ActorID         uuid.UUID  `json:"actor_id" binding:"required"`
		ActorType       string     `json:"actor_type" binding:"required"`
		Content         string     `json:"content" binding:"required,min=1"`
		ParentCommentID *uuid.UUID `json:"parent_comment_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if !models.IsValidActorType(req.ActorType) {
		utils.Error(ctx, http.StatusBadRequest, 40030, "actor_type must be user or business")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40033, "content cannot be empty")
		return
	}

	var postCount int64
	if err := c.db.Model(&models.Post{}).Where("id = ?", req.PostID).Count(&postCount).Error; err != nil || postCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
		return
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := c.db.First(&parent, "id = ?", *req.ParentCommentID).Error; err != nil {
			utils.Error(ctx, http.StatusNotFound, 40406, "parent comment not found")
			return
		}
		if parent.PostID != req.PostID {
			utils.Error(ctx, http.StatusBadRequest, 40034, "parent comment belongs to another post")
			return
		}
	}

	comment := models.Comment{
		PostID:          req.PostID,
		ActorID:         req.ActorID,
		ActorType:       req.ActorType,
		Content:         content,
		ParentCommentID: req.ParentCommentID,
		IsActive:        true,
	}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to create comment")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Created(ctx, gin.H{"comment": comment})
}

// ListByPost returns the comment tree for a post. Replies whose parent was
// deleted surface as top level comments.
func (c *CommentController) ListByPost(ctx *gin.Context) {
	postID, ok := uuidParam(ctx, "post_id")
	if !ok {
		return
	}

	var comments []models.Comment
	if err := c.db.Where("post_id = ? AND is_active = ?", postID, true).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to list comments")
		return
	}

	nodes := make([]*thread.Node, 0, len(comments))
	for i := range comments {
		nodes = append(nodes, &thread.Node{
			Comment: comments[i],
			Author:  models.ResolveAuthor(c.db, comments[i].ActorID, comments[i].ActorType),
		})
	}

	roots := thread.Build(nodes)
	utils.Success(ctx, gin.H{"comments": roots, "total": thread.Count(roots)})
}

// UpdateComment applies a partial edit. Content, parent and active state may
// each be changed independently; absent fields keep their stored value.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Content         *string    `json:"content"`
		ParentCommentID *uuid.UUID `json:"parent_comment_id"`
		IsActive        *bool      `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.Content == nil && req.ParentCommentID == nil && req.IsActive == nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no fields to update")
		return
	}

	if req.Content != nil {
		content := utils.Sanitize(strings.TrimSpace(*req.Content))
		if content == "" {
			utils.Error(ctx, http.StatusBadRequest, 40033, "content cannot be empty")
			return
		}
		req.Content = &content
	}

	var comment models.Comment
	if err := c.db.First(&comment, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40406, "comment not found")
		return
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := c.db.First(&parent, "id = ?", *req.ParentCommentID).Error; err != nil {
			utils.Error(ctx, http.StatusNotFound, 40406, "parent comment not found")
			return
		}
		if parent.PostID != comment.PostID {
			utils.Error(ctx, http.StatusBadRequest, 40034, "parent comment belongs to another post")
			return
		}
	}

	comment.ApplyUpdate(req.Content, req.ParentCommentID, req.IsActive)
	if err := c.db.Save(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to update comment")
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment and its likes. Replies are left in place
// and get promoted when the tree is rebuilt.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Comment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40406, "comment not found")
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to delete comment")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, gin.H{"deleted": true})
}

// ToggleLike flips the like state on a comment for an actor, creating the
// row on first use. The row is kept through unlikes so repeated toggles
// alternate state.
func (c *CommentController) ToggleLike(ctx *gin.Context) {
	var req struct {
		CommentID uuid.UUID `json:"comment_id" binding:"required"`
		ActorID   uuid.UUID `json:"actor_id" binding:"required"`
		ActorType string    `json:"actor_type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if !models.IsValidActorType(req.ActorType) {
		utils.Error(ctx, http.StatusBadRequest, 40030, "actor_type must be user or business")
		return
	}

	var commentCount int64
	if err := c.db.Model(&models.Comment{}).Where("id = ?", req.CommentID).Count(&commentCount).Error; err != nil || commentCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40406, "comment not found")
		return
	}

	outcome, like, err := c.toggleCommentLike(req.CommentID, req.ActorID, req.ActorType)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to toggle like")
		return
	}

	var likeCount int64
	c.db.Model(&models.CommentLike{}).Where("comment_id = ? AND is_active = ?", req.CommentID, true).Count(&likeCount)
	utils.Success(ctx, gin.H{"liked": outcome.Active, "created": outcome.Created, "like": like, "like_count": likeCount})
}

// commentLikeStore adapts the comment_likes table to the toggle store.
type commentLikeStore struct {
	db        *gorm.DB
	commentID uuid.UUID
	actorID   uuid.UUID
	actorType string
	row       models.CommentLike
}

func (s *commentLikeStore) Current() (*bool, error) {
	s.row = models.CommentLike{}
	err := s.db.Where("comment_id = ? AND actor_id = ? AND actor_type = ?", s.commentID, s.actorID, s.actorType).
		First(&s.row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s.row.IsActive, nil
}

func (s *commentLikeStore) Insert(active bool) error {
	s.row = models.CommentLike{CommentID: s.commentID, ActorID: s.actorID, ActorType: s.actorType, IsActive: active}
	return s.db.Create(&s.row).Error
}

func (s *commentLikeStore) SetActive(active bool) error {
	if err := s.db.Model(&s.row).Update("is_active", active).Error; err != nil {
		return err
	}
	s.row.IsActive = active
	return nil
}

func (c *CommentController) toggleCommentLike(commentID, actorID uuid.UUID, actorType string) (toggle.Outcome, *models.CommentLike, error) {
	store := &commentLikeStore{db: c.db, commentID: commentID, actorID: actorID, actorType: actorType}
	outcome, err := toggle.Apply(store)
	if err != nil {
		return toggle.Outcome{}, nil, err
	}
	return outcome, &store.row, nil
}
