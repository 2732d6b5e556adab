// Package savedjob provides HTTP handlers for bookmarking job listings.
package savedjob

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SavedJobController handles saved-job endpoints
type SavedJobController struct {
	DB *database.DBinstanceStruct
}

// NewSavedJobController creates a new instance of SavedJobController
func NewSavedJobController(db *database.DBinstanceStruct) *SavedJobController {
	return &SavedJobController{
		DB: db,
	}
}

// SaveJob bookmarks a job listing for the caller.
// @Summary Bookmark a job listing
// @Tags SavedJob
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 201 {object} model.SavedJob
// @Failure 400 {object} utilities.ErrorResponse "Job already saved"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /saved-jobs/{id} [post]
func (sc *SavedJobController) SaveJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var job model.Job
	err = sc.DB.Where("id = ?", c.Param("id")).First(&job).Error

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

	var seeker model.JobSeeker
	if err := sc.DB.Where(model.JobSeeker{UserID: user.ID}).
		FirstOrCreate(&seeker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve seeker profile: %s", err.Error()),
		})
		return
	}

	saved := model.SavedJob{
		JobID:       job.ID,
		JobSeekerID: seeker.ID,
	}
	if err := sc.DB.Create(&saved).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You have already saved this job",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// UnsaveJob removes a bookmark.
// @Summary Remove a bookmarked job listing
// @Tags SavedJob
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Bookmark not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /saved-jobs/{id} [delete]
func (sc *SavedJobController) UnsaveJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var seeker model.JobSeeker
	err = sc.DB.Where("user_id = ?", user.ID).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Saved job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	result := sc.DB.Where("job_id = ? AND job_seeker_id = ?", c.Param("id"), seeker.ID).
		Delete(&model.SavedJob{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to remove saved job: %s", result.Error.Error()),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Saved job not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Saved job removed"})
}

// ListSaved returns the caller's bookmarked jobs, newest first.
// @Summary List bookmarked job listings
// @Tags SavedJob
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.SavedJob
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /saved-jobs [get]
func (sc *SavedJobController) ListSaved(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var seeker model.JobSeeker
	err = sc.DB.Where("user_id = ?", user.ID).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, []model.SavedJob{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	var saved []model.SavedJob
	if err := sc.DB.Preload("Job").
		Preload("Job.Employer").
		Preload("Job.Category").
		Where("job_seeker_id = ?", seeker.ID).
		Order("saved_at DESC").
		Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve saved jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, saved)
}
