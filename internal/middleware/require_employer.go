package middleware

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

// RequireEmployer protects endpoints reserved for employers. There is no role
// column; a user counts as an employer when an employer profile row exists.
// The loaded profile is stored in the context under "employer".
func RequireEmployer(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		var employer model.Employer
		err = db.Where("user_id = ?", user.ID).First(&employer).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
			return

		case err != nil:
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve employer profile: %s", err.Error()),
			})
			return
		}

		ctx.Set("employer", employer)
		ctx.Next()
	}
}
