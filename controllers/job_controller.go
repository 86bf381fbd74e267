package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pronet/models"
	"pronet/utils"
)

// JobController manages job listings and applications.
type JobController struct {
	db *gorm.DB
}

// NewJobController creates a new JobController instance.
func NewJobController(db *gorm.DB) *JobController {
	return &JobController{db: db}
}

// CreateListing posts an opening under a business account.
func (j *JobController) CreateListing(ctx *gin.Context) {
	var req struct {
		BusinessID    uuid.UUID  `json:"business_id" binding:"required"`
		Title         string     `json:"title" binding:"required,min=1"`
		Description   string     `json:"description" binding:"required,min=1"`
		Location      string     `json:"location"`
		JobType       string     `json:"job_type"`
		SalaryRange   string     `json:"salary_range"`
		SkillsNeeded  []string   `json:"skills_needed"`
		ApplyDeadline *time.Time `json:"apply_deadline"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var count int64
	if err := j.db.Model(&models.BusinessAccount{}).Where("id = ?", req.BusinessID).Count(&count).Error; err != nil || count == 0 {
		utils.Error(ctx, http.StatusNotFound, 40402, "business not found")
		return
	}

	listing := models.JobListing{
		BusinessID:    req.BusinessID,
		Title:         utils.SanitizePlain(strings.TrimSpace(req.Title)),
		Description:   utils.Sanitize(req.Description),
		Location:      utils.SanitizePlain(req.Location),
		JobType:       strings.TrimSpace(req.JobType),
		SalaryRange:   strings.TrimSpace(req.SalaryRange),
		SkillsNeeded:  models.StringList(req.SkillsNeeded),
		ApplyDeadline: req.ApplyDeadline,
		IsOpen:        true,
	}
	if listing.SkillsNeeded == nil {
		listing.SkillsNeeded = models.StringList{}
	}

	if err := j.db.Create(&listing).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to create job listing")
		return
	}
	utils.Created(ctx, gin.H{"job": listing})
}

// ListJobs returns paginated open listings, newest first.
func (j *JobController) ListJobs(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	query := j.db.Model(&models.JobListing{}).Where("is_open = ?", true)
	if businessID := strings.TrimSpace(ctx.Query("business_id")); businessID != "" {
		bid, err := uuid.Parse(businessID)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40001, "invalid business_id")
			return
		}
		query = j.db.Model(&models.JobListing{}).Where("business_id = ?", bid)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50101, "failed to count jobs")
		return
	}
	var jobs []models.JobListing
	if err := query.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&jobs).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50102, "failed to list jobs")
		return
	}
	utils.Success(ctx, gin.H{"jobs": jobs, "total": total, "page": page, "page_size": pageSize})
}

// GetJob returns one listing.
func (j *JobController) GetJob(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var listing models.JobListing
	if err := j.db.First(&listing, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40407, "job not found")
		return
	}
	utils.Success(ctx, gin.H{"job": listing})
}

// UpdateListing modifies listing fields, including closing it.
func (j *JobController) UpdateListing(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Title         *string    `json:"title"`
		Description   *string    `json:"description"`
		Location      *string    `json:"location"`
		JobType       *string    `json:"job_type"`
		SalaryRange   *string    `json:"salary_range"`
		SkillsNeeded  []string   `json:"skills_needed"`
		ApplyDeadline *time.Time `json:"apply_deadline"`
		IsOpen        *bool      `json:"is_open"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = utils.SanitizePlain(strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		updates["description"] = utils.Sanitize(*req.Description)
	}
	if req.Location != nil {
		updates["location"] = utils.SanitizePlain(*req.Location)
	}
	if req.JobType != nil {
		updates["job_type"] = strings.TrimSpace(*req.JobType)
	}
	if req.SalaryRange != nil {
		updates["salary_range"] = strings.TrimSpace(*req.SalaryRange)
	}
	if req.SkillsNeeded != nil {
		updates["skills_needed"] = models.StringList(req.SkillsNeeded)
	}
	if req.ApplyDeadline != nil {
		updates["apply_deadline"] = *req.ApplyDeadline
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no fields to update")
		return
	}

	var listing models.JobListing
	if err := j.db.First(&listing, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40407, "job not found")
		return
	}
	if err := j.db.Model(&listing).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50103, "failed to update job listing")
		return
	}
	utils.Success(ctx, gin.H{"job": listing})
}

// Apply submits an application for a listing. The applicant's resume URL is
// snapshotted from their profile at apply time.
func (j *JobController) Apply(ctx *gin.Context) {
	jobID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		UserID      uuid.UUID `json:"user_id" binding:"required"`
		CoverLetter string    `json:"cover_letter"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	var listing models.JobListing
	if err := j.db.First(&listing, "id = ?", jobID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40407, "job not found")
		return
	}
	if !listing.IsOpen {
		utils.Error(ctx, http.StatusBadRequest, 40036, "job listing is closed")
		return
	}
	if listing.ApplyDeadline != nil && time.Now().After(*listing.ApplyDeadline) {
		utils.Error(ctx, http.StatusBadRequest, 40037, "application deadline has passed")
		return
	}

	var user models.User
	if err := j.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	application := models.JobApplication{
		JobID:       jobID,
		UserID:      req.UserID,
		ResumeURL:   user.ResumeURL,
		CoverLetter: utils.Sanitize(req.CoverLetter),
		Status:      models.ApplicationApplied,
		IsActive:    true,
	}
	if err := j.db.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40905, "already applied to this job")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50104, "failed to create application")
		return
	}
	utils.Created(ctx, gin.H{"application": application})
}

// ListApplications returns the applications for a listing with applicant
// profiles, for the hiring business.
func (j *JobController) ListApplications(ctx *gin.Context) {
	jobID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	var applications []models.JobApplication
	if err := j.db.Where("job_id = ? AND is_active = ?", jobID, true).Order("created_at ASC").Find(&applications).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50105, "failed to list applications")
		return
	}

	type applicationEntry struct {
		models.JobApplication
		Applicant models.PublicProfile `json:"applicant"`
	}
	entries := make([]applicationEntry, 0, len(applications))
	for _, app := range applications {
		entry := applicationEntry{JobApplication: app}
		var user models.User
		if err := j.db.First(&user, "id = ?", app.UserID).Error; err == nil {
			entry.Applicant = user.Public()
		}
		entries = append(entries, entry)
	}
	utils.Success(ctx, gin.H{"applications": entries, "total": len(entries)})
}

// UpdateApplicationStatus moves an application through the review pipeline.
func (j *JobController) UpdateApplicationStatus(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "application_id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	switch req.Status {
	case models.ApplicationApplied, models.ApplicationReviewed, models.ApplicationAccepted, models.ApplicationRejected:
	default:
		utils.Error(ctx, http.StatusBadRequest, 40038, "invalid application status")
		return
	}

	var application models.JobApplication
	if err := j.db.First(&application, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40408, "application not found")
		return
	}
	if err := j.db.Model(&application).Update("status", req.Status).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50106, "failed to update application")
		return
	}
	utils.Success(ctx, gin.H{"application": application})
}

// MyApplications returns the applications submitted by a user.
func (j *JobController) MyApplications(ctx *gin.Context) {
	userID, ok := uuidParam(ctx, "user_id")
	if !ok {
		return
	}

	var applications []models.JobApplication
	if err := j.db.Where("user_id = ? AND is_active = ?", userID, true).Order("created_at DESC").Find(&applications).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50107, "failed to list applications")
		return
	}

	type applicationEntry struct {
		models.JobApplication
		Job models.JobListing `json:"job"`
	}
	entries := make([]applicationEntry, 0, len(applications))
	for _, app := range applications {
		entry := applicationEntry{JobApplication: app}
		j.db.First(&entry.Job, "id = ?", app.JobID)
		entries = append(entries, entry)
	}
	utils.Success(ctx, gin.H{"applications": entries})
}
