// Package dashboard serves the role-dependent dashboard endpoint.
package dashboard

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardController handles the dashboard endpoint for both roles.
type DashboardController struct {
	DB *database.DBinstanceStruct
}

// NewDashboardController creates a new instance of DashboardController
func NewDashboardController(db *database.DBinstanceStruct) *DashboardController {
	return &DashboardController{
		DB: db,
	}
}

type activityEntry struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	AppliedAt   string `json:"applied_at"`
	Status      string `json:"status"`
}

type seekerDashboard struct {
	Role             string              `json:"role"`
	ApplicationCount int64               `json:"application_count"`
	SavedJobCount    int64               `json:"saved_job_count"`
	ProfileViewCount int64               `json:"profile_view_count"`
	RecentActivity   []activityEntry     `json:"recent_activity"`
	TrendingJobs     []model.JobResponse `json:"trending_jobs"`
}

type jobWithApplicants struct {
	Job        model.JobResponse      `json:"job"`
	Applicants []model.JobApplication `json:"applicants"`
}

type employerDashboard struct {
	Role                string                          `json:"role"`
	Jobs                []jobWithApplicants             `json:"jobs"`
	TotalApplications   int64                           `json:"total_applications"`
	ApplicationsSummary map[string]int                  `json:"applications_summary"`
	Notifications       []model.ApplicationNotification `json:"notifications"`
}

// GetDashboard returns the seeker or employer dashboard depending on which
// profile row exists for the caller. A user with an employer profile gets the
// employer view; everyone else gets the seeker view. Unlike the public pages
// this endpoint fails loudly on database errors.
// @Summary Role-dependent dashboard
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} dashboard.seekerDashboard "If caller is a job seeker"
// @Success 200 {object} dashboard.employerDashboard "If caller is an employer"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var employer model.Employer
	err = dc.DB.Where("user_id = ?", user.ID).First(&employer).Error

	switch {
	case err == nil:
		dc.employerDashboard(c, user, employer)

	case errors.Is(err, gorm.ErrRecordNotFound):
		dc.seekerDashboard(c, user)

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
	}
}

func (dc *DashboardController) seekerDashboard(c *gin.Context, user model.User) {
	resp := seekerDashboard{
		Role:           "seeker",
		RecentActivity: []activityEntry{},
		TrendingJobs:   []model.JobResponse{},
	}

	var seeker model.JobSeeker
	err := dc.DB.Where("user_id = ?", user.ID).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No profile yet: everything is zero, trending falls back to the
		// default keyword.
		if !dc.fillTrending(c, user, &resp, "") {
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if err := dc.DB.Model(&model.JobApplication{}).
		Where("job_seeker_id = ?", seeker.ID).
		Count(&resp.ApplicationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to count applications: %s", err.Error()),
		})
		return
	}

	if err := dc.DB.Model(&model.SavedJob{}).
		Where("job_seeker_id = ?", seeker.ID).
		Count(&resp.SavedJobCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to count saved jobs: %s", err.Error()),
		})
		return
	}

	if err := dc.DB.Model(&model.ProfileView{}).
		Where("job_seeker_id = ?", seeker.ID).
		Count(&resp.ProfileViewCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to count profile views: %s", err.Error()),
		})
		return
	}

	var recent []model.JobApplication
	if err := dc.DB.Preload("Job").Preload("Job.Employer").
		Where("job_seeker_id = ?", seeker.ID).
		Order("applied_at DESC").
		Limit(3).
		Find(&recent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve recent activity: %s", err.Error()),
		})
		return
	}
	for _, a := range recent {
		resp.RecentActivity = append(resp.RecentActivity, activityEntry{
			Title:       "Applied for " + a.Job.Title,
			CompanyName: a.Job.Employer.CompanyName,
			AppliedAt:   a.AppliedAt.Format("January 02, 2006"),
			Status:      a.Status,
		})
	}

	if !dc.fillTrending(c, user, &resp, seeker.FirstSkill()) {
		return
	}

	c.JSON(http.StatusOK, resp)
}

// fillTrending loads up to three open jobs whose category name matches the
// seeker's first listed skill, defaulting to "Technology". Reports false
// after writing an error response.
func (dc *DashboardController) fillTrending(c *gin.Context, user model.User, resp *seekerDashboard, keyword string) bool {
	if keyword == "" {
		keyword = "Technology"
	}

	var jobs []model.Job
	err := dc.DB.Preload("Employer").
		Preload("Applications.JobSeeker").
		Joins("JOIN categories ON categories.id = jobs.category_id").
		Where("categories.name ILIKE ?", "%"+keyword+"%").
		Where("jobs.is_active = ?", true).
		Order("jobs.created_at DESC").
		Limit(3).
		Find(&jobs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve trending jobs: %s", err.Error()),
		})
		return false
	}

	for _, j := range jobs {
		jr, err := j.ToJobResponse(user)
		if err != nil {
			continue
		}
		resp.TrendingJobs = append(resp.TrendingJobs, jr)
	}
	return true
}

func (dc *DashboardController) employerDashboard(c *gin.Context, user model.User, employer model.Employer) {
	resp := employerDashboard{
		Role:                "employer",
		Jobs:                []jobWithApplicants{},
		ApplicationsSummary: map[string]int{},
		Notifications:       []model.ApplicationNotification{},
	}

	var jobs []model.Job
	if err := dc.DB.Preload("Category").
		Where("employer_id = ?", employer.ID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job listings: %s", err.Error()),
		})
		return
	}

	jobIDs := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
	}

	// One bulk query for every applicant across all listings, grouped in
	// memory, instead of a query per job.
	var applications []model.JobApplication
	if len(jobIDs) > 0 {
		if err := dc.DB.Preload("JobSeeker").
			Preload("JobSeeker.User").
			Where("job_id IN ?", jobIDs).
			Order("applied_at DESC").
			Find(&applications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
			})
			return
		}
	}

	byJob := make(map[uint][]model.JobApplication, len(jobs))
	for _, a := range applications {
		byJob[a.JobID] = append(byJob[a.JobID], a)
		resp.ApplicationsSummary[a.Status]++
	}
	resp.TotalApplications = int64(len(applications))

	for _, j := range jobs {
		jr, err := j.ToJobResponse(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to serialize job listing: %s", err.Error()),
			})
			return
		}
		applicants := byJob[j.ID]
		if applicants == nil {
			applicants = []model.JobApplication{}
		}
		resp.Jobs = append(resp.Jobs, jobWithApplicants{
			Job:        jr,
			Applicants: applicants,
		})
	}

	var notifications []model.ApplicationNotification
	if err := dc.DB.Preload("Application").
		Preload("Application.Job").
		Preload("Application.JobSeeker.User").
		Where("employer_id = ?", employer.ID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve notifications: %s", err.Error()),
		})
		return
	}
	for _, n := range notifications {
		if !n.IsRead {
			resp.Notifications = append(resp.Notifications, n)
		}
	}

	c.JSON(http.StatusOK, resp)
}
