package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// UserController manages member accounts and profiles.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a new UserController instance.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// CreateUser registers a member with email and password credentials.
func (u *UserController) CreateUser(ctx *gin.Context) {
	var req struct {
		FirstName string   `json:"first_name" binding:"required,min=1"`
		LastName  string   `json:"last_name" binding:"required,min=1"`
		Username  string   `json:"username" binding:"required,min=3,max=64"`
		Email     string   `json:"email" binding:"required,email"`
		Password  string   `json:"password" binding:"required,min=8"`
		Mobile    string   `json:"mobile"`
		Interests []string `json:"interests"`
		Skills    []string `json:"skills"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "password too weak")
		return
	}

	user := models.User{
		FirstName:    utils.SanitizePlain(strings.TrimSpace(req.FirstName)),
		LastName:     utils.SanitizePlain(strings.TrimSpace(req.LastName)),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Mobile:       strings.TrimSpace(req.Mobile),
		Interests:    models.StringList(req.Interests),
		Skills:       models.StringList(req.Skills),
		IsActive:     true,
	}
	if user.Interests == nil {
		user.Interests = models.StringList{}
	}
	if user.Skills == nil {
		user.Skills = models.StringList{}
	}

	if err := u.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40901, "email or username already taken")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create user")
		return
	}

	utils.Created(ctx, gin.H{"user": user})
}

// Login authenticates with email and password and issues a JWT.
func (u *UserController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var user models.User
	if err := u.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
		return
	}
	if !user.IsActive || !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.DisplayName(), user.ProfilePic, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}
	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// GetUser returns a public profile by ID.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var user models.User
	if err := u.db.First(&user, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"user": user.Public()})
}

// GetUserByUsername returns a public profile by its handle.
func (u *UserController) GetUserByUsername(ctx *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(ctx.Param("username")))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid username")
		return
	}
	var user models.User
	if err := u.db.Where("username = ?", username).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"user": user.Public()})
}

// ListUsers returns paginated users, cached per page.
func (u *UserController) ListUsers(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("cache:users:list:page=%d:size=%d", page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var users []models.User
	var total int64
	if err := u.db.Model(&models.User{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50000, "failed to count users")
		return
	}
	if err := u.db.Where("is_active = ?", true).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to retrieve users")
		return
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}

	resp := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{
		"users": profiles, "total": total, "page": page, "page_size": pageSize,
	}}
	utils.CacheSetJSON(cacheKey, resp, time.Minute)
	ctx.JSON(200, resp)
}

// UpdateUser lets the authenticated user update their own profile.
func (u *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}
	if id != userID {
		utils.Error(ctx, http.StatusForbidden, 40301, "cannot update another user")
		return
	}

	var req struct {
		FirstName       *string          `json:"first_name"`
		LastName        *string          `json:"last_name"`
		Mobile          *string          `json:"mobile"`
		Organisation    *string          `json:"organisation"`
		Bio             models.JSONValue `json:"bio"`
		ProfilePic      *string          `json:"profile_pic"`
		ResumeURL       *string          `json:"resume_url"`
		Interests       []string         `json:"interests"`
		Skills          []string         `json:"skills"`
		College         *string          `json:"college"`
		Batch           *string          `json:"batch"`
		Stream          *string          `json:"stream"`
		LinkedIn        *string          `json:"linkedin"`
		GitHub          *string          `json:"github"`
		WorkExperiences models.JSONValue `json:"work_experiences"`
		Projects        models.JSONValue `json:"projects"`
		Pronouns        *string          `json:"pronouns"`
		Location        *string          `json:"location"`
		HackingOn       *string          `json:"hacking_on"`
		Learning        *string          `json:"learning"`
		AvailableFor    *string          `json:"available_for"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	setPlain := func(col string, v *string) {
		if v != nil {
			updates[col] = utils.SanitizePlain(strings.TrimSpace(*v))
		}
	}
	setPlain("first_name", req.FirstName)
	setPlain("last_name", req.LastName)
	setPlain("mobile", req.Mobile)
	setPlain("organisation", req.Organisation)
	setPlain("college", req.College)
	setPlain("batch", req.Batch)
	setPlain("stream", req.Stream)
	setPlain("pronouns", req.Pronouns)
	setPlain("location", req.Location)
	setPlain("hacking_on", req.HackingOn)
	setPlain("learning", req.Learning)
	setPlain("available_for", req.AvailableFor)
	if req.ProfilePic != nil {
		updates["profile_pic"] = strings.TrimSpace(*req.ProfilePic)
	}
	if req.ResumeURL != nil {
		updates["resume_url"] = strings.TrimSpace(*req.ResumeURL)
	}
	if req.LinkedIn != nil {
		updates["linked_in"] = strings.TrimSpace(*req.LinkedIn)
	}
	if req.GitHub != nil {
		updates["git_hub"] = strings.TrimSpace(*req.GitHub)
	}
	if req.Interests != nil {
		updates["interests"] = models.StringList(req.Interests)
	}
	if req.Skills != nil {
		updates["skills"] = models.StringList(req.Skills)
	}
	if len(req.Bio) > 0 {
		updates["bio"] = req.Bio
	}
	if len(req.WorkExperiences) > 0 {
		updates["work_experiences"] = req.WorkExperiences
	}
	if len(req.Projects) > 0 {
		updates["projects"] = req.Projects
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no fields to update")
		return
	}

	var user models.User
	if err := u.db.First(&user, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	if err := u.db.Model(&user).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to update user")
		return
	}

	utils.InvalidateByPrefix("cache:users:list:")
	utils.Success(ctx, gin.H{"user": user})
}

// DeleteUser deactivates the authenticated user's account. Content authored
// by the account stays in place and resolves to the Unknown author.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := authedUserID(ctx)
	if !ok {
		return
	}
	if id != userID {
		utils.Error(ctx, http.StatusForbidden, 40302, "cannot delete another user")
		return
	}

	res := u.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to delete user")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.InvalidateByPrefix("cache:users:list:")
	utils.Success(ctx, gin.H{"deleted": true})
}

// LookupUser finds a user by email or username query parameter.
func (u *UserController) LookupUser(ctx *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(ctx.Query("email")))
	username := strings.ToLower(strings.TrimSpace(ctx.Query("username")))
	if email == "" && username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "email or username is required")
		return
	}

	query := u.db.Model(&models.User{})
	if email != "" {
		query = query.Where("email = ?", email)
	} else {
		query = query.Where("username = ?", username)
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"user": user.Public()})
}
