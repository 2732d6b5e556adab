// Package notification provides the employer notification endpoints.
package notification

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotificationController handles employer notification endpoints
type NotificationController struct {
	DB *database.DBinstanceStruct
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(db *database.DBinstanceStruct) *NotificationController {
	return &NotificationController{
		DB: db,
	}
}

// ListUnread returns the caller's unread application notifications, newest
// first. Requires the employer middleware.
// @Summary List unread application notifications
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.ApplicationNotification
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not an employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [get]
func (nc *NotificationController) ListUnread(c *gin.Context) {
	employer, ok := extractEmployer(c)
	if !ok {
		return
	}

	var notifications []model.ApplicationNotification
	if err := nc.DB.Preload("Application").
		Preload("Application.Job").
		Preload("Application.JobSeeker.User").
		Where("employer_id = ? AND is_read = ?", employer.ID, false).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve notifications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead acknowledges one notification belonging to the caller.
// @Summary Mark one notification as read
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Notification ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not an employer"
// @Failure 404 {object} utilities.ErrorResponse "Notification not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications/{id}/read [patch]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	employer, ok := extractEmployer(c)
	if !ok {
		return
	}

	result := nc.DB.Model(&model.ApplicationNotification{}).
		Where("id = ? AND employer_id = ?", c.Param("id"), employer.ID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update notification: %s", result.Error.Error()),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Notification marked as read"})
}

// extractEmployer pulls the employer profile set by the RequireEmployer
// middleware. It writes the error response itself.
func extractEmployer(c *gin.Context) (model.Employer, bool) {
	v, exists := c.Get("employer")
	if !exists {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "User doesn't have permission to access",
		})
		return model.Employer{}, false
	}
	employer, ok := v.(model.Employer)
	if !ok {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to assert employer profile type",
		})
		return model.Employer{}, false
	}
	return employer, true
}
