package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// ShareController manages direct post sharing between users.
type ShareController struct {
	db *gorm.DB
}

// NewShareController creates a new ShareController instance.
func NewShareController(db *gorm.DB) *ShareController {
	return &ShareController{db: db}
}

// SharePost sends a post to one or more recipients, one share record each.
func (s *ShareController) SharePost(ctx *gin.Context) {
	var req struct {
		PostID      uuid.UUID   `json:"post_id" binding:"required"`
		SenderID    uuid.UUID   `json:"sender_id" binding:"required"`
		ReceiverIDs []uuid.UUID `json:"receiver_ids" binding:"required,min=1"`
		Message     string      `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var postCount int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", req.PostID).Count(&postCount).Error; err != nil || postCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
		return
	}
	var senderCount int64
	if err := s.db.Model(&models.User{}).Where("id = ?", req.SenderID).Count(&senderCount).Error; err != nil || senderCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	message := utils.Sanitize(strings.TrimSpace(req.Message))
	shares := make([]models.SharedPost, 0, len(req.ReceiverIDs))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, receiverID := range req.ReceiverIDs {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", receiverID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				continue
			}
			share := models.SharedPost{
				PostID:     req.PostID,
				SenderID:   req.SenderID,
				ReceiverID: receiverID,
				Message:    message,
			}
			if err := tx.Create(&share).Error; err != nil {
				return err
			}
			shares = append(shares, share)
		}
		return nil
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50110, "failed to share post")
		return
	}

	utils.Created(ctx, gin.H{"shares": shares, "shared_with": len(shares)})
}

// ReceivedShares lists the posts shared with a user, newest first.
func (s *ShareController) ReceivedShares(ctx *gin.Context) {
	userID, ok := uuidParam(ctx, "user_id")
	if !ok {
		return
	}
	limit, offset := parseLimitOffset(ctx, 20)

	var shares []models.SharedPost
	if err := s.db.Where("receiver_id = ?", userID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&shares).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50111, "failed to list shares")
		return
	}

	type shareEntry struct {
		models.SharedPost
		Post   models.Post          `json:"post"`
		Sender models.PublicProfile `json:"sender"`
	}
	entries := make([]shareEntry, 0, len(shares))
	for _, share := range shares {
		entry := shareEntry{SharedPost: share}
		s.db.Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			First(&entry.Post, "id = ?", share.PostID)
		var sender models.User
		if err := s.db.First(&sender, "id = ?", share.SenderID).Error; err == nil {
			entry.Sender = sender.Public()
		}
		entries = append(entries, entry)
	}
	utils.Success(ctx, gin.H{"shares": entries, "limit": limit, "offset": offset})
}
