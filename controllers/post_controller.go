package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/config"
	"pronet/feed"
	"pronet/models"
	"pronet/utils"
)

// PostController manages posts, attachments and the interest feed.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// CreatePost creates a post with optional media attachments.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		UserID      uuid.UUID        `json:"user_id" binding:"required"`
		Title       models.JSONValue `json:"title"`
		Content     models.JSONValue `json:"content" binding:"required"`
		PostType    string           `json:"post_type"`
		Tags        []string         `json:"tags"`
		Likes       *int64           `json:"likes"`
		IsActive    *bool            `json:"is_active"`
		CommunityID *uuid.UUID       `json:"community_id"`
		Media       []struct {
			MediaURL  string `json:"media_url" binding:"required"`
			MediaType string `json:"media_type" binding:"required"`
			Position  int    `json:"position"`
		} `json:"media"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var authorCount int64
	if err := p.db.Model(&models.User{}).Where("id = ?", req.UserID).Count(&authorCount).Error; err != nil || authorCount == 0 {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	if req.CommunityID != nil {
		var count int64
		if err := p.db.Model(&models.Community{}).Where("id = ?", *req.CommunityID).Count(&count).Error; err != nil || count == 0 {
			utils.Error(ctx, http.StatusNotFound, 40403, "community not found")
			return
		}
	}

	post := models.Post{
		UserID:      req.UserID,
		Title:       req.Title,
		Content:     req.Content,
		PostType:    req.PostType,
		Tags:        models.StringList(req.Tags),
		CommunityID: req.CommunityID,
		IsActive:    true,
	}
	if post.PostType == "" {
		post.PostType = "standard"
	}
	if req.Likes != nil {
		post.Likes = *req.Likes
	}
	if req.IsActive != nil {
		post.IsActive = *req.IsActive
	}
	if post.Tags == nil {
		post.Tags = models.StringList{}
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		for i, m := range req.Media {
			position := m.Position
			if position == 0 {
				position = i
			}
			media := models.PostMedia{
				PostID:    post.ID,
				MediaURL:  strings.TrimSpace(m.MediaURL),
				MediaType: m.MediaType,
				Position:  position,
			}
			if err := tx.Create(&media).Error; err != nil {
				return err
			}
			post.Media = append(post.Media, media)
		}
		return nil
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Created(ctx, gin.H{"post": post})
}

// ListPosts returns paginated posts with like and comment counts, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	communityID := strings.TrimSpace(ctx.Query("community_id"))

	cacheKey := fmt.Sprintf("cache:posts:list:community=%s:page=%d:size=%d", communityID, page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	query := p.db.Model(&models.Post{}).Where("is_active = ?", true)
	if communityID != "" {
		cid, err := uuid.Parse(communityID)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40001, "invalid community_id")
			return
		}
		query = query.Where("community_id = ?", cid)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count posts")
		return
	}

	var posts []models.Post
	if err := query.Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to list posts")
		return
	}

	ranked := p.withCounts(posts)
	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{
		"posts": ranked, "total": total, "page": page, "page_size": pageSize,
	}}
	utils.CacheSetJSON(cacheKey, resp, time.Minute)
	ctx.JSON(200, resp)
}

// GetPost returns a single post with media and counts.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var post models.Post
	if err := p.db.Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&post, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
		return
	}
	ranked := p.withCounts([]models.Post{post})
	utils.Success(ctx, gin.H{"post": ranked[0]})
}

// ListByAuthor returns all posts by one author, newest first.
func (p *PostController) ListByAuthor(ctx *gin.Context) {
	authorID, ok := uuidParam(ctx, "author_id")
	if !ok {
		return
	}
	limit, offset := parseLimitOffset(ctx, 20)

	var posts []models.Post
	if err := p.db.Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", authorID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{"posts": p.withCounts(posts)})
}

// ListTags returns the distinct tags in use across all posts.
func (p *PostController) ListTags(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:posts:tags"); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var rows []models.Post
	if err := p.db.Select("tags").Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to list tags")
		return
	}
	seen := map[string]struct{}{}
	tags := []string{}
	for _, row := range rows {
		for _, t := range row.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}

	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"tags": tags}}
	utils.CacheSetJSON("cache:posts:tags", resp, 5*time.Minute)
	ctx.JSON(200, resp)
}

// InterestFeed ranks posts against the user's interests. Sort modes are
// relevant (interest overlap), top (likes) and latest; all break ties by
// recency.
func (p *PostController) InterestFeed(ctx *gin.Context) {
	userID, ok := uuidParam(ctx, "user_id")
	if !ok {
		return
	}
	limit, offset := parseLimitOffset(ctx, feed.DefaultLimit)
	sortMode := feed.NormalizeSort(ctx.Query("sort"))

	var user models.User
	if err := p.db.Select("interests").First(&user, "id = ?", userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	var posts []models.Post
	if err := p.db.Preload("Media", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("is_active = ?", true).Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to fetch feed posts")
		return
	}

	ranked := feed.Rank(p.withCounts(posts), user.Interests, sortMode)
	pageOut := feed.Page(ranked, limit, offset)
	utils.Success(ctx, gin.H{"posts": pageOut, "sort": sortMode, "limit": limit, "offset": offset})
}

// UpdatePost applies a partial edit: absent fields keep their stored value.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Title       models.JSONValue `json:"title"`
		Content     models.JSONValue `json:"content"`
		PostType    *string          `json:"post_type"`
		Tags        []string         `json:"tags"`
		Likes       *int64           `json:"likes"`
		IsActive    *bool            `json:"is_active"`
		CommunityID *uuid.UUID       `json:"community_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if len(req.Title) > 0 {
		updates["title"] = req.Title
	}
	if len(req.Content) > 0 {
		updates["content"] = req.Content
	}
	if req.PostType != nil {
		updates["post_type"] = *req.PostType
	}
	if req.Tags != nil {
		updates["tags"] = models.StringList(req.Tags)
	}
	if req.Likes != nil {
		updates["likes"] = *req.Likes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.CommunityID != nil {
		updates["community_id"] = *req.CommunityID
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no fields to update")
		return
	}

	var post models.Post
	if err := p.db.First(&post, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
		return
	}
	if err := p.db.Model(&post).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to update post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post with its media, comments, likes and shares.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)",
			tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", id),
		).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SharedPost{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, gin.H{"deleted": true})
}

// UploadMedia accepts a multipart file, verifies it is an image or video by
// content sniffing and stores it under the upload directory.
func (p *PostController) UploadMedia(ctx *gin.Context) {
	cfg := config.Get()

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "file is required")
		return
	}
	if fileHeader.Size > int64(cfg.UploadMaxSizeMB)<<20 {
		utils.Error(ctx, http.StatusBadRequest, 40041, "file too large")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to read upload")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, int64(cfg.UploadMaxSizeMB)<<20+1))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to read upload")
		return
	}

	kind, ext, err := utils.DetectMediaType(data)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "only image and video uploads are allowed")
		return
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to store upload")
		return
	}
	name := utils.MediaFilename(ext)
	if err := os.WriteFile(filepath.Join(cfg.UploadDir, name), data, 0o644); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to store upload")
		return
	}

	utils.Created(ctx, gin.H{
		"media_url":  "/uploads/" + name,
		"media_type": kind,
		"size":       len(data),
	})
}

// withCounts attaches like and comment counts to a set of posts.
func (p *PostController) withCounts(posts []models.Post) []models.RankedPost {
	ranked := make([]models.RankedPost, 0, len(posts))
	for _, post := range posts {
		rp := models.RankedPost{Post: post}
		p.db.Model(&models.PostLike{}).Where("post_id = ? AND is_active = ?", post.ID, true).Count(&rp.LikeCount)
		p.db.Model(&models.Comment{}).Where("post_id = ? AND is_active = ?", post.ID, true).Count(&rp.CommentCount)
		ranked = append(ranked, rp)
	}
	return ranked
}
