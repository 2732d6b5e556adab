// Package seeker provides HTTP handlers for job seeker profile operations.
package seeker

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SeekerController handles seeker profile related endpoints
type SeekerController struct {
	DB *database.DBinstanceStruct
}

// NewSeekerController creates a new instance of SeekerController
func NewSeekerController(db *database.DBinstanceStruct) *SeekerController {
	return &SeekerController{
		DB: db,
	}
}

type settingsRequest struct {
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

// UpdateSettings overwrites the narrow settings subset of the seeker profile.
// Empty fields are left untouched.
// @Summary Update the settings subset of the caller's seeker profile
// @Tags Seeker
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Settings body seeker.settingsRequest true "Fields to update; empty fields are ignored"
// @Success 200 {object} model.JobSeeker
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /seeker/settings [patch]
func (sc *SeekerController) UpdateSettings(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req settingsRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	seeker, err := sc.getOrCreateSeeker(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve seeker profile: %s", err.Error()),
		})
		return
	}

	patch := model.EditableSeekerInfo{
		Phone:      req.Phone,
		Location:   req.Location,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
	}
	utilities.MergeNonEmpty(&seeker.EditableSeekerInfo, &patch)

	if err := sc.DB.Save(&seeker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update seeker profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, seeker)
}

// UpdateProfile replaces the full editable profile. Unlike UpdateSettings the
// linkedin_url and github_url fields are assigned unconditionally, so sending
// them empty clears them.
// @Summary Update the caller's full seeker profile
// @Tags Seeker
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableSeekerInfo true "Profile fields"
// @Success 200 {object} model.JobSeeker
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /seeker/profile [put]
func (sc *SeekerController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var info model.EditableSeekerInfo
	merged, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(merged, &info)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	seeker, err := sc.getOrCreateSeeker(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve seeker profile: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&seeker.EditableSeekerInfo, &info)

	// The profile form always submits the link fields, so they track the
	// submitted values exactly, including clearing them.
	seeker.LinkedinURL = strings.TrimSpace(stringField(raw, "linkedin_url"))
	seeker.GithubURL = strings.TrimSpace(stringField(raw, "github_url"))

	if err := sc.DB.Save(&seeker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update seeker profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, seeker)
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// GetMyProfile returns the caller's own seeker profile, creating a blank one
// on first access.
// @Summary Get the caller's seeker profile
// @Tags Seeker
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.JobSeeker
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /seeker/myprofile [get]
func (sc *SeekerController) GetMyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	seeker, err := sc.getOrCreateSeeker(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to resolve seeker profile: %s", err.Error()),
		})
		return
	}

	if err := sc.DB.Preload("User").
		Preload("Applications").
		Preload("Applications.Job").
		Where("id = ?", seeker.ID).
		First(&seeker).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve seeker profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, seeker)
}

// ViewProfile lets an employer look at the profile of a seeker who applied
// to one of their job listings. The view is recorded best-effort for the
// seeker's dashboard counter.
// @Summary View an applicant's profile
// @Description Only employers whose listings the seeker applied to get access
// @Tags Seeker
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param user_id path string true "User ID of the seeker"
// @Success 200 {object} model.JobSeeker
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not an employer or has no application from this seeker"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profiles/{user_id} [get]
func (sc *SeekerController) ViewProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var employer model.Employer
	err = sc.DB.Where("user_id = ?", user.ID).First(&employer).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only employers can view applicant profiles.",
		})
		return

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	var seeker model.JobSeeker
	err = sc.DB.Preload("User").
		Where("user_id = ?", c.Param("user_id")).
		First(&seeker).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
		return

	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	// The employer must have received an application from this seeker on one
	// of their own listings.
	var relationCount int64
	if err := sc.DB.Model(&model.JobApplication{}).
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("job_applications.job_seeker_id = ?", seeker.ID).
		Where("jobs.employer_id = ?", employer.ID).
		Count(&relationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}
	if relationCount == 0 {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You do not have permission to view this profile.",
		})
		return
	}

	view := model.ProfileView{
		JobSeekerID: seeker.ID,
		EmployerID:  employer.ID,
	}
	if err := sc.DB.Create(&view).Error; err != nil {
		log.Printf("failed to record profile view: %v", err)
	}

	c.JSON(http.StatusOK, seeker)
}

func (sc *SeekerController) getOrCreateSeeker(user model.User) (model.JobSeeker, error) {
	var seeker model.JobSeeker
	err := sc.DB.Where(model.JobSeeker{UserID: user.ID}).
		FirstOrCreate(&seeker).Error
	return seeker, err
}
