// Package job provides HTTP handlers for job listing related operations.
package job

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobController handles job listing related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

type homeResponse struct {
	Categories []model.CategoryCount `json:"categories"`
	LatestJobs []model.JobResponse   `json:"latest_jobs"`
	TotalJobs  int64                 `json:"total_jobs"`
	Error      string                `json:"error,omitempty"`
}

// Home returns the landing page data: category counts and the five most
// recent open listings. Database failures degrade to empty lists with an
// error field instead of failing the whole page.
// @Summary Landing page data: category counts and latest open jobs
// @Tags Job
// @Produce json
// @Success 200 {object} job.homeResponse
// @Router /home [get]
func (jc *JobController) Home(c *gin.Context) {

	resp := homeResponse{
		Categories: []model.CategoryCount{},
		LatestJobs: []model.JobResponse{},
	}

	var categories []model.CategoryCount
	err := jc.DB.Model(&model.Category{}).
		Select("categories.id, categories.name, COUNT(jobs.id) AS job_count").
		Joins("LEFT JOIN jobs ON jobs.category_id = categories.id AND jobs.is_active = ?", true).
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&categories).Error
	if err != nil {
		resp.Error = "Some data could not be loaded"
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Categories = categories

	var jobs []model.Job
	err = jc.DB.Preload("Employer").Preload("Category").
		Where("is_active = ?", true).
		Where("deadline >= ?", today()).
		Order("created_at DESC").
		Limit(5).
		Find(&jobs).Error
	if err != nil {
		resp.Error = "Some data could not be loaded"
		c.JSON(http.StatusOK, resp)
		return
	}

	if err := jc.DB.Model(&model.Job{}).
		Where("is_active = ?", true).
		Where("deadline >= ?", today()).
		Count(&resp.TotalJobs).Error; err != nil {
		resp.Error = "Some data could not be loaded"
	}

	for _, j := range jobs {
		jr, err := j.ToJobResponse(model.User{})
		if err != nil {
			continue
		}
		resp.LatestJobs = append(resp.LatestJobs, jr)
	}

	c.JSON(http.StatusOK, resp)
}

type jobListResponse struct {
	Jobs  []model.JobResponse `json:"jobs"`
	Query string              `json:"query"`
	Error string              `json:"error,omitempty"`
}

// GetJobs fetches all open job listings matching the optional title query.
// @Summary Get open job listings, optionally filtered by title substring
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param q query string false "Case-insensitive substring match on the job title"
// @Success 200 {object} job.jobListResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	rawQuery := c.Query("q")

	resp := jobListResponse{
		Jobs:  []model.JobResponse{},
		Query: rawQuery,
	}

	result := jc.DB.Preload("Employer").
		Preload("Category").
		Preload("Applications.JobSeeker").
		Where("is_active = ?", true).
		Where("deadline >= ?", today())

	if rawQuery != "" {
		result = result.Where("title ILIKE ?", "%"+rawQuery+"%")
	}

	var jobs []model.Job
	if err := result.Order("created_at DESC").Find(&jobs).Error; err != nil {
		resp.Error = "Job listings could not be loaded"
		c.JSON(http.StatusOK, resp)
		return
	}

	for _, j := range jobs {
		jr, err := j.ToJobResponse(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to serialize job listing: %s", err.Error()),
			})
			return
		}
		resp.Jobs = append(resp.Jobs, jr)
	}

	c.JSON(http.StatusOK, resp)
}

// GetJobByID returns a single job listing with the caller's application state.
// @Summary Get a single job listing by ID
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} model.JobResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var job model.Job
	err = jc.DB.Preload("Employer").
		Preload("Employer.User").
		Preload("Category").
		Preload("Applications.JobSeeker").
		Where("id = ?", c.Param("id")).
		First(&job).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	jr, err := job.ToJobResponse(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to serialize job listing: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jr)
}

type postJobRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	JobType      string `json:"job_type"`
	Salary       string `json:"salary"`
	ContactEmail string `json:"contact_email"`
	Deadline     string `json:"deadline"`
}

// CreateJob creates a new job listing. The caller becomes an employer on
// first use: an employer profile is created when none exists, and the stored
// company name is updated to the latest submitted value.
// @Summary Create a job listing
// @Description Any authenticated user can post; an employer profile is created on first use
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body job.postJobRequest true "Job listing fields, deadline as YYYY-MM-DD"
// @Success 201 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Missing or invalid fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req postJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)

	if req.Title == "" || req.Company == "" || req.Description == "" ||
		req.Requirements == "" || req.Category == "" ||
		req.Location == "" || req.JobType == "" || req.Deadline == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title, company, description, requirements, category, location, job type and deadline are required",
		})
		return
	}

	categoryName, ok := model.CategoryLabels[req.Category]
	if !ok {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid category selected"})
		return
	}

	if _, ok := model.JobTypeDisplay[req.JobType]; !ok {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job type selected"})
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Deadline must be a date in YYYY-MM-DD format",
		})
		return
	}

	var category model.Category
	if err := jc.DB.Where(model.Category{Name: categoryName}).
		FirstOrCreate(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve category: %s", err.Error()),
		})
		return
	}

	// Get-or-create the employer profile, keeping company_name in sync with
	// the latest submitted value.
	employer := model.Employer{
		UserID: user.ID,
		EditableEmployerInfo: model.EditableEmployerInfo{
			CompanyName: req.Company,
		},
	}
	if err := jc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"company_name": req.Company}),
	}).Create(&employer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save employer profile: %s", err.Error()),
		})
		return
	}
	if err := jc.DB.Where("user_id = ?", user.ID).First(&employer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employer profile: %s", err.Error()),
		})
		return
	}

	job := model.Job{
		CategoryID: category.ID,
		EmployerID: employer.ID,
		IsActive:   true,
		EditableJobInfo: model.EditableJobInfo{
			Title:        req.Title,
			Description:  req.Description,
			Requirements: req.Requirements,
			Location:     req.Location,
			JobType:      req.JobType,
			Salary:       req.Salary,
			Deadline:     deadline,
		},
	}
	if email := strings.TrimSpace(req.ContactEmail); email != "" {
		job.ContactEmail = &email
	}

	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job listing: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// DeleteJob removes a job listing owned by the calling employer. Applications
// and saved-job rows go with it through the FK cascade.
// @Summary Delete a job listing owned by the caller
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the listing"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var job model.Job
	err = jc.DB.Preload("Employer").Where("id = ?", c.Param("id")).First(&job).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if job.Employer.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only delete your own job listings",
		})
		return
	}

	if err := jc.DB.Select(clause.Associations).Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job listing: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job listing deleted"})
}

// today returns the current date truncated to midnight UTC, for comparisons
// against the DATE deadline column.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
