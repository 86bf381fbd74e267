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

// FollowerController manages the user follow graph.
type FollowerController struct {
	db *gorm.DB
}

// NewFollowerController creates a new FollowerController instance.
func NewFollowerController(db *gorm.DB) *FollowerController {
	return &FollowerController{db: db}
}

// ToggleFollow flips the follow state between two users. Self follows are
// rejected and both accounts must exist.
func (f *FollowerController) ToggleFollow(ctx *gin.Context) {
	var req struct {
		FollowerID uuid.UUID `json:"follower_id" binding:"required"`
		FollowedID uuid.UUID `json:"followed_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.FollowerID == req.FollowedID {
		utils.Error(ctx, http.StatusBadRequest, 40035, "cannot follow yourself")
		return
	}

	var count int64
	if err := f.db.Model(&models.User{}).Where("id IN ?", []uuid.UUID{req.FollowerID, req.FollowedID}).Count(&count).Error; err != nil || count != 2 {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	outcome, follow, err := f.toggleFollow(req.FollowerID, req.FollowedID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to toggle follow")
		return
	}
	utils.Success(ctx, gin.H{"following": outcome.Active, "created": outcome.Created, "follow": follow})
}

// followStore adapts the followers table to the toggle store.
type followStore struct {
	db         *gorm.DB
	followerID uuid.UUID
	followedID uuid.UUID
	row        models.Follower
}

func (s *followStore) Current() (*bool, error) {
	s.row = models.Follower{}
	err := s.db.Where("follower_id = ? AND followed_id = ?", s.followerID, s.followedID).First(&s.row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s.row.IsActive, nil
}

func (s *followStore) Insert(active bool) error {
	s.row = models.Follower{FollowerID: s.followerID, FollowedID: s.followedID, IsActive: active}
	return s.db.Create(&s.row).Error
}

func (s *followStore) SetActive(active bool) error {
	if err := s.db.Model(&s.row).Update("is_active", active).Error; err != nil {
		return err
	}
	s.row.IsActive = active
	return nil
}

func (f *FollowerController) toggleFollow(followerID, followedID uuid.UUID) (toggle.Outcome, *models.Follower, error) {
	store := &followStore{db: f.db, followerID: followerID, followedID: followedID}
	outcome, err := toggle.Apply(store)
	if err != nil {
		return toggle.Outcome{}, nil, err
	}
	return outcome, &store.row, nil
}

// FollowStatus reports whether follower currently follows followed.
func (f *FollowerController) FollowStatus(ctx *gin.Context) {
	followerID, ok := uuidParam(ctx, "follower_id")
	if !ok {
		return
	}
	followedID, ok := uuidParam(ctx, "followed_id")
	if !ok {
		return
	}

	var count int64
	if err := f.db.Model(&models.Follower{}).
		Where("follower_id = ? AND followed_id = ? AND is_active = ?", followerID, followedID, true).
		Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to check follow status")
		return
	}
	utils.Success(ctx, gin.H{"following": count > 0})
}

// FollowerCount returns how many users follow the given user.
func (f *FollowerController) FollowerCount(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var count int64
	if err := f.db.Model(&models.Follower{}).Where("followed_id = ? AND is_active = ?", id, true).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to count followers")
		return
	}
	utils.Success(ctx, gin.H{"user_id": id, "follower_count": count})
}

// FollowingCount returns how many users the given user follows.
func (f *FollowerController) FollowingCount(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var count int64
	if err := f.db.Model(&models.Follower{}).Where("follower_id = ? AND is_active = ?", id, true).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to count following")
		return
	}
	utils.Success(ctx, gin.H{"user_id": id, "following_count": count})
}

// ListFollowers returns the public profiles of a user's followers.
func (f *FollowerController) ListFollowers(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	f.listRelated(ctx, "followed_id = ?", id, "follower_id", "followers")
}

// ListFollowing returns the public profiles the user follows.
func (f *FollowerController) ListFollowing(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	f.listRelated(ctx, "follower_id = ?", id, "followed_id", "following")
}

func (f *FollowerController) listRelated(ctx *gin.Context, where string, id uuid.UUID, otherColumn, key string) {
	limit, offset := parseLimitOffset(ctx, 20)

	var rows []models.Follower
	if err := f.db.Where(where+" AND is_active = ?", id, true).
		Order("updated_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50094, "failed to list follows")
		return
	}

	profiles := make([]models.PublicProfile, 0, len(rows))
	for _, row := range rows {
		otherID := row.FollowerID
		if otherColumn == "followed_id" {
			otherID = row.FollowedID
		}
		var user models.User
		if err := f.db.First(&user, "id = ?", otherID).Error; err == nil {
			profiles = append(profiles, user.Public())
		}
	}
	utils.Success(ctx, gin.H{key: profiles, "limit": limit, "offset": offset})
}
