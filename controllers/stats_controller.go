package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// StatsController provides platform wide aggregate counts.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the platform. Counts that fail
// to load report zero instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:stats"); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	count := func(model interface{}, query ...interface{}) int64 {
		var n int64
		q := s.db.Model(model)
		if len(query) > 0 {
			q = q.Where(query[0], query[1:]...)
		}
		if err := q.Count(&n).Error; err != nil {
			return 0
		}
		return n
	}

	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{
		"user_count":      count(&models.User{}, "is_active = ?", true),
		"business_count":  count(&models.BusinessAccount{}),
		"community_count": count(&models.Community{}),
		"post_count":      count(&models.Post{}),
		"comment_count":   count(&models.Comment{}),
		"like_count":      count(&models.PostLike{}, "is_active = ?", true),
		"follow_count":    count(&models.Follower{}, "is_active = ?", true),
		"open_job_count":  count(&models.JobListing{}, "is_open = ?", true),
	}}
	utils.CacheSetJSON("cache:stats", resp, time.Minute)
	ctx.JSON(200, resp)
}
