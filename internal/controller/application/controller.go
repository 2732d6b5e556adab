// Package application provides HTTP handlers for job application operations.
package application

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/mail"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB     *database.DBinstanceStruct
	Mailer mail.Mailer
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection and mailer.
func NewApplicationController(db *database.DBinstanceStruct, mailer mail.Mailer) *ApplicationController {
	return &ApplicationController{
		DB:     db,
		Mailer: mailer,
	}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
	ResumeID    *int   `json:"resume_id"`
}

// Apply handles the creation of a new job application. The caller becomes a
// job seeker on first use: a seeker profile is created when none exists.
// @Summary Apply to a job listing
// @Description A seeker profile is created on first use; one application per job per seeker
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Param application body application.applyRequest true "Cover letter and optional resume reference"
// @Success 201 {object} model.JobApplication "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Duplicate application, closed listing or invalid resume"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/apply [post]
func (ac *ApplicationController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var job model.Job
	err = ac.DB.Preload("Employer").Preload("Employer.User").
		Where("id = ?", c.Param("id")).First(&job).Error

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

	if !job.IsActive || job.IsExpired() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "This job listing is no longer accepting applications",
		})
		return
	}

	seeker, err := getOrCreateSeeker(ac.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve seeker profile: %s", err.Error()),
		})
		return
	}

	// Prevent duplicate applications: check if this seeker already applied to the same job
	existing := model.JobApplication{}
	if err := ac.DB.
		Where("job_id = ? AND job_seeker_id = ?", job.ID, seeker.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied for this job.",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	application := model.JobApplication{
		JobID:       job.ID,
		JobSeekerID: seeker.ID,
		CoverLetter: req.CoverLetter,
		ResumeID:    req.ResumeID,
		Status:      model.ApplicationStatusPending,
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) {
			// Foreign key violation means the resume reference is invalid
			if pqErr.Code == "23503" {
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: fmt.Sprintf("Invalid resume reference: %s", err.Error()),
				})
				return
			}
			// Unique violation closes the race between the duplicate check
			// and the insert
			if pqErr.Code == "23505" {
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: "You have already applied for this job.",
				})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	ac.notifyEmployer(job, application, user)

	c.JSON(http.StatusCreated, application)
}

// notifyEmployer records an in-app notification and sends confirmation emails
// to both sides. All of it is best effort: failures are logged, never
// surfaced to the applicant.
func (ac *ApplicationController) notifyEmployer(job model.Job, application model.JobApplication, applicant model.User) {
	notification := model.ApplicationNotification{
		EmployerID:    job.EmployerID,
		ApplicationID: application.ID,
	}
	if err := ac.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to create application notification: %v", err)
	}

	if ac.Mailer == nil {
		return
	}

	if email := job.Employer.User.Email; email != nil {
		subject := fmt.Sprintf("New application for %s", job.Title)
		body := fmt.Sprintf("%s has applied for your job listing %q.", applicant.FullName(), job.Title)
		if err := ac.Mailer.Send(*email, subject, body); err != nil {
			log.Printf("failed to email employer: %v", err)
		}
	}

	if applicant.Email != nil {
		subject := fmt.Sprintf("Application received: %s", job.Title)
		body := fmt.Sprintf("Your application for %q at %s has been submitted.", job.Title, job.Employer.CompanyName)
		if err := ac.Mailer.Send(*applicant.Email, subject, body); err != nil {
			log.Printf("failed to email applicant: %v", err)
		}
	}
}

// GetMyApplications lists the caller's applications, newest first.
// @Summary List the caller's own applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobApplication
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var seeker model.JobSeeker
	err = ac.DB.Where("user_id = ?", user.ID).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No profile yet means no applications either
		c.JSON(http.StatusOK, []model.JobApplication{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	var applications []model.JobApplication
	if err := ac.DB.Preload("Job").
		Preload("Job.Employer").
		Preload("Job.Category").
		Where("job_seeker_id = ?", seeker.ID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetApplicationByID lets the employer who owns the job view one application.
// @Summary View a single application on one of the caller's job listings
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} model.JobApplication
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the job listing"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	application, ok := ac.loadOwnedApplication(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, application)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an application along pending -> reviewed -> accepted or
// rejected. Only the employer owning the job listing may do this.
// @Summary Update the status of an application on one of the caller's job listings
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Param Status body application.statusUpdateRequest true "New status"
// @Success 200 {object} model.JobApplication
// @Failure 400 {object} utilities.ErrorResponse "Invalid status transition"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller does not own the job listing"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Status must be provided",
		})
		return
	}

	application, ok := ac.loadOwnedApplication(c, user)
	if !ok {
		return
	}

	if err := application.UpdateStatus(req.Status); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := ac.DB.Model(&model.JobApplication{}).
		Where("id = ?", application.ID).
		Update("status", application.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

// loadOwnedApplication fetches an application by path ID and verifies the
// caller owns the job it belongs to. It writes the error response itself.
func (ac *ApplicationController) loadOwnedApplication(c *gin.Context, user model.User) (model.JobApplication, bool) {
	var application model.JobApplication
	err := ac.DB.Preload("Job").
		Preload("Job.Employer").
		Preload("JobSeeker").
		Preload("JobSeeker.User").
		Where("id = ?", c.Param("id")).
		First(&application).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return application, false

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return application, false
	}

	if application.Job.Employer.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You can only view applications on your own job listings",
		})
		return application, false
	}

	return application, true
}

// getOrCreateSeeker returns the seeker profile for the user, creating a blank
// one when it does not exist yet.
func getOrCreateSeeker(db *database.DBinstanceStruct, user model.User) (model.JobSeeker, error) {
	var seeker model.JobSeeker
	err := db.Where(model.JobSeeker{UserID: user.ID}).
		FirstOrCreate(&seeker).Error
	return seeker, err
}
