package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"Jobportal-backend/internal/auth"
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/middleware"
	"Jobportal-backend/internal/model"
	"Jobportal-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func testEngine() *gin.Engine {
	ctrl := NewDashboardController(testDB)
	r := gin.New()
	r.GET("/dashboard", middleware.RequireAuth(testDB), ctrl.GetDashboard)
	return r
}

func token(t *testing.T, user model.User) string {
	t.Helper()
	tok, err := auth.GetAccessToken(t, testDB, *user.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	return tok
}

func getDashboard(t *testing.T, user model.User) map[string]interface{} {
	t.Helper()
	rec, resp := testutil.MakeJSONRequest(nil, token(t, user), testEngine(), "/dashboard", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return resp
}

func TestSeekerDashboardWithoutProfile(t *testing.T) {
	resp := getDashboard(t, database.TestUserPlain)

	assert.Equal(t, "seeker", resp["role"])
	assert.EqualValues(t, 0, resp["application_count"])
	assert.EqualValues(t, 0, resp["saved_job_count"])
	assert.EqualValues(t, 0, resp["profile_view_count"])
	assert.Empty(t, resp["recent_activity"])
	// No seeded category matches the default trending keyword
	assert.Empty(t, resp["trending_jobs"])
}

func TestSeekerDashboardCounts(t *testing.T) {
	application := model.JobApplication{
		JobID:       database.TestJob1.ID,
		JobSeekerID: database.TestSeeker1.ID,
		CoverLetter: "Hi",
		Status:      model.ApplicationStatusPending,
	}
	assert.NoError(t, testDB.Create(&application).Error)
	assert.NoError(t, testDB.Create(&model.SavedJob{
		JobID:       database.TestJob2.ID,
		JobSeekerID: database.TestSeeker1.ID,
	}).Error)
	assert.NoError(t, testDB.Create(&model.ProfileView{
		JobSeekerID: database.TestSeeker1.ID,
		EmployerID:  database.TestEmployer1.ID,
	}).Error)

	resp := getDashboard(t, database.TestUserSeeker1)

	assert.Equal(t, "seeker", resp["role"])
	assert.EqualValues(t, 1, resp["application_count"])
	assert.EqualValues(t, 1, resp["saved_job_count"])
	assert.EqualValues(t, 1, resp["profile_view_count"])

	activity, ok := resp["recent_activity"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, activity, 1)
	entry := activity[0].(map[string]interface{})
	assert.Equal(t, "Applied for "+database.TestJob1.Title, entry["title"])
	assert.Equal(t, database.TestEmployer1.CompanyName, entry["company_name"])
	assert.Equal(t, model.ApplicationStatusPending, entry["status"])
	assert.Contains(t, entry["applied_at"], fmt.Sprint(time.Now().Year()))

	// Seeker one's first listed skill is Marketing, which matches the
	// seeded Marketing category.
	trending, ok := resp["trending_jobs"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, trending, 1)
	job := trending[0].(map[string]interface{})
	assert.Equal(t, database.TestJob2.Title, job["title"])
}

func TestEmployerDashboard(t *testing.T) {
	var application model.JobApplication
	assert.NoError(t, testDB.
		Where("job_id = ? AND job_seeker_id = ?", database.TestJob1.ID, database.TestSeeker1.ID).
		First(&application).Error)

	unread := model.ApplicationNotification{
		EmployerID:    database.TestEmployer1.ID,
		ApplicationID: application.ID,
	}
	assert.NoError(t, testDB.Create(&unread).Error)
	read := model.ApplicationNotification{
		EmployerID:    database.TestEmployer1.ID,
		ApplicationID: application.ID,
		IsRead:        true,
	}
	assert.NoError(t, testDB.Create(&read).Error)

	resp := getDashboard(t, database.TestUserEmployer1)

	assert.Equal(t, "employer", resp["role"])
	assert.EqualValues(t, 1, resp["total_applications"])

	summary, ok := resp["applications_summary"].(map[string]interface{})
	assert.True(t, ok)
	assert.EqualValues(t, 1, summary[model.ApplicationStatusPending])

	jobs, ok := resp["jobs"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, jobs, 2)

	var applicantsForJob1 []interface{}
	for _, raw := range jobs {
		entry := raw.(map[string]interface{})
		job := entry["job"].(map[string]interface{})
		if job["title"] == database.TestJob1.Title {
			applicantsForJob1 = entry["applicants"].([]interface{})
		}
	}
	assert.Len(t, applicantsForJob1, 1)

	// Only unread notifications make it onto the dashboard
	notifications, ok := resp["notifications"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, notifications, 1)
	entry := notifications[0].(map[string]interface{})
	assert.Equal(t, false, entry["is_read"])
}

func TestEmployerDashboardWithoutApplications(t *testing.T) {
	resp := getDashboard(t, database.TestUserEmployer2)

	assert.Equal(t, "employer", resp["role"])
	assert.EqualValues(t, 0, resp["total_applications"])

	jobs, ok := resp["jobs"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, jobs, 1)
	entry := jobs[0].(map[string]interface{})
	assert.Empty(t, entry["applicants"])
	assert.Empty(t, resp["notifications"])
}
