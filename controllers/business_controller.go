package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// BusinessController manages organisation accounts.
type BusinessController struct {
	db *gorm.DB
}

// NewBusinessController creates a new BusinessController instance.
func NewBusinessController(db *gorm.DB) *BusinessController {
	return &BusinessController{db: db}
}

// Register creates a business account.
func (b *BusinessController) Register(ctx *gin.Context) {
	var req struct {
		CompanyName       string `json:"company_name" binding:"required,min=1"`
		ContactPersonName string `json:"contact_person_name" binding:"required,min=1"`
		Email             string `json:"email" binding:"required,email"`
		Password          string `json:"password" binding:"required,min=8"`
		Address           string `json:"address" binding:"required,min=1"`
		GSTNumber         string `json:"gst_number"`
		Website           string `json:"website"`
		Phone             string `json:"phone"`
		LogoURL           string `json:"logo_url"`
		Description       string `json:"description"`
		Industry          string `json:"industry"`
		Size              string `json:"size"`
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

	account := models.BusinessAccount{
		CompanyName:       utils.SanitizePlain(strings.TrimSpace(req.CompanyName)),
		ContactPersonName: utils.SanitizePlain(strings.TrimSpace(req.ContactPersonName)),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:      hash,
		Address:           utils.SanitizePlain(strings.TrimSpace(req.Address)),
		GSTNumber:         strings.TrimSpace(req.GSTNumber),
		Website:           strings.TrimSpace(req.Website),
		Phone:             strings.TrimSpace(req.Phone),
		LogoURL:           strings.TrimSpace(req.LogoURL),
		Description:       utils.Sanitize(req.Description),
		Industry:          utils.SanitizePlain(req.Industry),
		Size:              strings.TrimSpace(req.Size),
	}

	if err := b.db.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40903, "business email already registered")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create business account")
		return
	}

	utils.Created(ctx, gin.H{"business": account})
}

// Login authenticates a business account and issues a JWT.
func (b *BusinessController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var account models.BusinessAccount
	if err := b.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&account).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
		return
	}
	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Email, account.CompanyName, account.LogoURL, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}
	utils.Success(ctx, gin.H{"token": token, "business": account})
}

// GetBusiness returns a business account by ID.
func (b *BusinessController) GetBusiness(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var account models.BusinessAccount
	if err := b.db.First(&account, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "business not found")
		return
	}
	utils.Success(ctx, gin.H{"business": account})
}

// ListBusinesses returns paginated business accounts.
func (b *BusinessController) ListBusinesses(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var accounts []models.BusinessAccount
	var total int64
	query := b.db.Model(&models.BusinessAccount{})
	if industry := strings.TrimSpace(ctx.Query("industry")); industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to count businesses")
		return
	}
	if err := query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&accounts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list businesses")
		return
	}
	utils.Success(ctx, gin.H{"businesses": accounts, "total": total, "page": page, "page_size": pageSize})
}

// UpdateBusiness lets the authenticated business update its own record.
func (b *BusinessController) UpdateBusiness(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	actorID, ok := authedUserID(ctx)
	if !ok {
		return
	}
	if id != actorID {
		utils.Error(ctx, http.StatusForbidden, 40303, "cannot update another business")
		return
	}

	var req struct {
		CompanyName       *string `json:"company_name"`
		ContactPersonName *string `json:"contact_person_name"`
		Address           *string `json:"address"`
		GSTNumber         *string `json:"gst_number"`
		Website           *string `json:"website"`
		Phone             *string `json:"phone"`
		LogoURL           *string `json:"logo_url"`
		Description       *string `json:"description"`
		Industry          *string `json:"industry"`
		Size              *string `json:"size"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = utils.SanitizePlain(strings.TrimSpace(*req.CompanyName))
	}
	if req.ContactPersonName != nil {
		updates["contact_person_name"] = utils.SanitizePlain(strings.TrimSpace(*req.ContactPersonName))
	}
	if req.Address != nil {
		updates["address"] = utils.SanitizePlain(strings.TrimSpace(*req.Address))
	}
	if req.GSTNumber != nil {
		updates["gst_number"] = strings.TrimSpace(*req.GSTNumber)
	}
	if req.Website != nil {
		updates["website"] = strings.TrimSpace(*req.Website)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.LogoURL != nil {
		updates["logo_url"] = strings.TrimSpace(*req.LogoURL)
	}
	if req.Description != nil {
		updates["description"] = utils.Sanitize(*req.Description)
	}
	if req.Industry != nil {
		updates["industry"] = utils.SanitizePlain(*req.Industry)
	}
	if req.Size != nil {
		updates["size"] = strings.TrimSpace(*req.Size)
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no fields to update")
		return
	}

	var account models.BusinessAccount
	if err := b.db.First(&account, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "business not found")
		return
	}
	if err := b.db.Model(&account).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to update business")
		return
	}
	utils.Success(ctx, gin.H{"business": account})
}
