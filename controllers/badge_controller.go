package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// BadgeController manages achievement badges.
type BadgeController struct {
	db *gorm.DB
}

// NewBadgeController creates a new BadgeController instance.
func NewBadgeController(db *gorm.DB) *BadgeController {
	return &BadgeController{db: db}
}

// CreateBadge defines a new badge.
func (b *BadgeController) CreateBadge(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,min=1"`
		Description string `json:"description"`
		IconURL     string `json:"icon_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	badge := models.Badge{
		Name:        utils.SanitizePlain(strings.TrimSpace(req.Name)),
		Description: utils.SanitizePlain(req.Description),
		IconURL:     strings.TrimSpace(req.IconURL),
	}
	if err := b.db.Create(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40906, "badge name already exists")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50120, "failed to create badge")
		return
	}
	utils.Created(ctx, gin.H{"badge": badge})
}

// ListBadges returns all badge definitions.
func (b *BadgeController) ListBadges(ctx *gin.Context) {
	var badges []models.Badge
	if err := b.db.Order("created_at ASC").Find(&badges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50121, "failed to list badges")
		return
	}
	utils.Success(ctx, gin.H{"badges": badges})
}

// AwardBadge grants a badge to a user, once.
func (b *BadgeController) AwardBadge(ctx *gin.Context) {
	var req struct {
		UserID  uuid.UUID `json:"user_id" binding:"required"`
		BadgeID uuid.UUID `json:"badge_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var userCount int64
	if err := b.db.Model(&models.User{}).Where("id = ?", req.UserID).Count(&userCount).Error; err != nil || userCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	var badgeCount int64
	if err := b.db.Model(&models.Badge{}).Where("id = ?", req.BadgeID).Count(&badgeCount).Error; err != nil || badgeCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40409, "badge not found")
		return
	}

	award := models.UserBadge{UserID: req.UserID, BadgeID: req.BadgeID}
	if err := b.db.Create(&award).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40907, "badge already awarded")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50122, "failed to award badge")
		return
	}
	utils.Created(ctx, gin.H{"award": award})
}

// UserBadges returns the badges a user has earned.
func (b *BadgeController) UserBadges(ctx *gin.Context) {
	userID, ok := uuidParam(ctx, "user_id")
	if !ok {
		return
	}
	var awards []models.UserBadge
	if err := b.db.Preload("Badge").Where("user_id = ?", userID).Order("awarded_at ASC").Find(&awards).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50123, "failed to list user badges")
		return
	}
	utils.Success(ctx, gin.H{"badges": awards})
}
