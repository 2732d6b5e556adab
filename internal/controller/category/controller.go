// Package category provides the public categories API.
package category

import (
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CategoryController handles category related endpoints
type CategoryController struct {
	DB *database.DBinstanceStruct
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(db *database.DBinstanceStruct) *CategoryController {
	return &CategoryController{
		DB: db,
	}
}

// CategoriesAPI returns every category with its count of active jobs. A
// category with no active jobs still appears, with a zero count.
// @Summary List categories with active job counts
// @Tags Category
// @Produce json
// @Success 200 {array} model.CategoryCount
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/categories [get]
func (cc *CategoryController) CategoriesAPI(c *gin.Context) {

	var counts []model.CategoryCount
	err := cc.DB.Model(&model.Category{}).
		Select("categories.id, categories.name, COUNT(jobs.id) AS job_count").
		Joins("LEFT JOIN jobs ON jobs.category_id = categories.id AND jobs.is_active = ?", true).
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve categories: %s", err.Error()),
		})
		return
	}

	if counts == nil {
		counts = []model.CategoryCount{}
	}

	c.JSON(http.StatusOK, counts)
}
