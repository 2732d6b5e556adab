// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"Jobportal-backend/internal/auth"
	"Jobportal-backend/internal/controller/application"
	"Jobportal-backend/internal/controller/category"
	"Jobportal-backend/internal/controller/dashboard"
	"Jobportal-backend/internal/controller/file"
	"Jobportal-backend/internal/controller/job"
	"Jobportal-backend/internal/controller/notification"
	"Jobportal-backend/internal/controller/savedjob"
	"Jobportal-backend/internal/controller/seeker"
	"Jobportal-backend/internal/middleware"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "Jobportal-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(s.Blacklist)

	jobCtrl := job.NewJobController(s.DB)
	appCtrl := application.NewApplicationController(s.DB, s.Mailer)
	dashCtrl := dashboard.NewDashboardController(s.DB)
	seekerCtrl := seeker.NewSeekerController(s.DB)
	categoryCtrl := category.NewCategoryController(s.DB)
	notifCtrl := notification.NewNotificationController(s.DB)
	savedCtrl := savedjob.NewSavedJobController(s.DB)
	fileCtrl := file.NewFileController(s.DB, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google", gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		// Public pages
		v1.GET("/home", jobCtrl.Home)
		v1.GET("/api/categories", categoryCtrl.CategoriesAPI)

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist))

			needAuth.POST("/logout", logout.LogoutHandler)

			fileRoute := needAuth.Group("/file")
			{
				fileRoute.GET(":id", fileCtrl.GetFile)
			}

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.GET("", jobCtrl.GetJobs)
				jobRoute.GET(":id", jobCtrl.GetJobByID)
				jobRoute.POST("", jobCtrl.CreateJob)
				jobRoute.DELETE(":id", jobCtrl.DeleteJob)
				jobRoute.POST(":id/apply", appCtrl.Apply)
			}

			applicationRoute := needAuth.Group("/applications")
			{
				applicationRoute.GET("", appCtrl.GetMyApplications)
				applicationRoute.GET(":id", appCtrl.GetApplicationByID)
				applicationRoute.PATCH(":id/status", appCtrl.UpdateStatus)
			}

			needAuth.GET("/dashboard", dashCtrl.GetDashboard)

			seekerRoute := needAuth.Group("/seeker")
			{
				seekerRoute.PATCH("settings", seekerCtrl.UpdateSettings)
				seekerRoute.PUT("profile", seekerCtrl.UpdateProfile)
				seekerRoute.GET("myprofile", seekerCtrl.GetMyProfile)
				seekerRoute.POST("profile/resume", middleware.SizeLimit(10<<20), fileCtrl.UploadResume)
				seekerRoute.POST("profile/picture", middleware.SizeLimit(10<<20), fileCtrl.UploadPicture)
			}

			needAuth.GET("/profiles/:user_id", seekerCtrl.ViewProfile)

			savedRoute := needAuth.Group("/saved-jobs")
			{
				savedRoute.GET("", savedCtrl.ListSaved)
				savedRoute.POST(":id", savedCtrl.SaveJob)
				savedRoute.DELETE(":id", savedCtrl.UnsaveJob)
			}

			notificationRoute := needAuth.Group("/notifications")
			{
				notificationRoute.Use(middleware.RequireEmployer(s.DB))
				notificationRoute.GET("", notifCtrl.ListUnread)
				notificationRoute.PATCH(":id/read", notifCtrl.MarkRead)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
