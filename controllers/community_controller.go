package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// CommunityController manages topic communities and membership.
type CommunityController struct {
	db *gorm.DB
}

// NewCommunityController creates a new CommunityController instance.
func NewCommunityController(db *gorm.DB) *CommunityController {
	return &CommunityController{db: db}
}

// CreateCommunity creates a community owned by a user or a business. The
// creator reference must match the declared creator type.
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	var req struct {
		Name              string     `json:"name" binding:"required,min=1"`
		Description       string     `json:"description"`
		CoverImage        string     `json:"cover_image"`
		Tags              []string   `json:"tags"`
		CreatorType       string     `json:"creator_type" binding:"required"`
		CreatorID         *uuid.UUID `json:"creator_id"`
		CreatorBusinessID *uuid.UUID `json:"creator_business_id"`
		IsPrivate         bool       `json:"is_private"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	if !models.IsValidActorType(req.CreatorType) {
		utils.Error(ctx, http.StatusBadRequest, 40030, "creator_type must be user or business")
		return
	}
	switch req.CreatorType {
	case models.ActorUser:
		if req.CreatorID == nil {
			utils.Error(ctx, http.StatusBadRequest, 40031, "creator_id is required for user communities")
			return
		}
		req.CreatorBusinessID = nil
	case models.ActorBusiness:
		if req.CreatorBusinessID == nil {
			utils.Error(ctx, http.StatusBadRequest, 40032, "creator_business_id is required for business communities")
			return
		}
		req.CreatorID = nil
	}

	community := models.Community{
		Name:              utils.SanitizePlain(strings.TrimSpace(req.Name)),
		Description:       utils.Sanitize(req.Description),
		CoverImage:        strings.TrimSpace(req.CoverImage),
		Tags:              models.StringList(req.Tags),
		CreatorType:       req.CreatorType,
		CreatorID:         req.CreatorID,
		CreatorBusinessID: req.CreatorBusinessID,
		IsPrivate:         req.IsPrivate,
		IsActive:          true,
	}
	if community.Tags == nil {
		community.Tags = models.StringList{}
	}

	if err := c.db.Create(&community).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to create community")
		return
	}

	// The user creator joins their own community as admin.
	if community.CreatorType == models.ActorUser && community.CreatorID != nil {
		member := models.CommunityMember{CommunityID: community.ID, UserID: *community.CreatorID, Role: "admin"}
		if err := c.db.Create(&member).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Sugar.Warnf("failed to enroll community creator: %v", err)
		}
	}

	utils.InvalidateByPrefix("cache:communities:list:")
	utils.Created(ctx, gin.H{"community": community})
}

// ListCommunities returns paginated communities with member counts. Pages are
// cached per page and size; mutations invalidate the whole prefix.
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("cache:communities:list:page=%d:size=%d", page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var communities []models.Community
	var total int64
	if err := c.db.Model(&models.Community{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to count communities")
		return
	}
	if err := c.db.Where("is_active = ?", true).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&communities).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to list communities")
		return
	}
	for i := range communities {
		c.db.Model(&models.CommunityMember{}).Where("community_id = ?", communities[i].ID).Count(&communities[i].MemberCount)
	}

	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{
		"communities": communities, "total": total, "page": page, "page_size": pageSize,
	}}
	utils.CacheSetJSON(cacheKey, resp, time.Minute)
	ctx.JSON(200, resp)
}

// GetCommunity returns one community with its member count.
func (c *CommunityController) GetCommunity(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var community models.Community
	if err := c.db.First(&community, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "community not found")
		return
	}
	c.db.Model(&models.CommunityMember{}).Where("community_id = ?", id).Count(&community.MemberCount)
	utils.Success(ctx, gin.H{"community": community})
}

// UpdateCommunity modifies community metadata.
func (c *CommunityController) UpdateCommunity(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		CoverImage  *string  `json:"cover_image"`
		Tags        []string `json:"tags"`
		IsPrivate   *bool    `json:"is_private"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = utils.SanitizePlain(strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		updates["description"] = utils.Sanitize(*req.Description)
	}
	if req.CoverImage != nil {
		updates["cover_image"] = strings.TrimSpace(*req.CoverImage)
	}
	if req.Tags != nil {
		updates["tags"] = models.StringList(req.Tags)
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no fields to update")
		return
	}

	var community models.Community
	if err := c.db.First(&community, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "community not found")
		return
	}
	if err := c.db.Model(&community).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to update community")
		return
	}

	utils.InvalidateByPrefix("cache:communities:list:")
	utils.Success(ctx, gin.H{"community": community})
}

// DeleteCommunity removes a community and its memberships. Posts keep their
// community reference cleared.
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("community_id = ?", id).Update("community_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&models.CommunityMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Community{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40403, "community not found")
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to delete community")
		return
	}

	utils.InvalidateByPrefix("cache:communities:list:")
	utils.Success(ctx, gin.H{"deleted": true})
}

// JoinCommunity enrolls the authenticated user as a member.
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}

	var count int64
	if err := c.db.Model(&models.Community{}).Where("id = ?", id).Count(&count).Error; err != nil || count == 0 {
		utils.Error(ctx, http.StatusNotFound, 40403, "community not found")
		return
	}

	member := models.CommunityMember{CommunityID: id, UserID: userID, Role: "member"}
	if err := c.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40904, "already a member")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to join community")
		return
	}
	utils.Created(ctx, gin.H{"member": member})
}

// LeaveCommunity removes the authenticated user's membership.
func (c *CommunityController) LeaveCommunity(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}

	res := c.db.Where("community_id = ? AND user_id = ?", id, userID).Delete(&models.CommunityMember{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to leave community")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40404, "membership not found")
		return
	}
	utils.Success(ctx, gin.H{"left": true})
}

// ListMembers returns the members of a community with their public profiles.
func (c *CommunityController) ListMembers(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var members []models.CommunityMember
	if err := c.db.Where("community_id = ?", id).Order("joined_at ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&members).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to list members")
		return
	}

	type memberEntry struct {
		models.CommunityMember
		Profile models.PublicProfile `json:"profile"`
	}
	entries := make([]memberEntry, 0, len(members))
	for _, m := range members {
		var user models.User
		entry := memberEntry{CommunityMember: m}
		if err := c.db.First(&user, "id = ?", m.UserID).Error; err == nil {
			entry.Profile = user.Public()
		}
		entries = append(entries, entry)
	}
	utils.Success(ctx, gin.H{"members": entries, "page": page, "page_size": pageSize})
}

// UpdateMemberRole changes a member's role within a community.
func (c *CommunityController) UpdateMemberRole(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	switch req.Role {
	case "member", "moderator", "admin":
	default:
		utils.Error(ctx, http.StatusBadRequest, 40039, "invalid role")
		return
	}

	res := c.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", id, req.UserID).
		Update("role", req.Role)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50058, "failed to update member role")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40404, "membership not found")
		return
	}
	utils.Success(ctx, gin.H{"community_id": id, "user_id": req.UserID, "role": req.Role})
}
