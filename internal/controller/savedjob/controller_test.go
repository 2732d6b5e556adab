package savedjob

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
	ctrl := NewSavedJobController(testDB)
	r := gin.New()
	protected := r.Group("/saved-jobs", middleware.RequireAuth(testDB))
	protected.GET("", ctrl.ListSaved)
	protected.POST("/:id", ctrl.SaveJob)
	protected.DELETE("/:id", ctrl.UnsaveJob)
	return r
}

func token(t *testing.T, user model.User) string {
	t.Helper()
	tok, err := auth.GetAccessToken(t, testDB, *user.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	return tok
}

func TestSaveJobNotFound(t *testing.T) {
	engine := testEngine()

	rec, resp := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserSeeker1), engine, "/saved-jobs/999999", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["error"])
}

func TestListSavedWithoutProfile(t *testing.T) {
	engine := testEngine()

	rec, _ := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserPlain), engine, "/saved-jobs", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestUnsaveWithoutProfile(t *testing.T) {
	engine := testEngine()

	rec, resp := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserEmployer1), engine,
		fmt.Sprintf("/saved-jobs/%d", database.TestJob1.ID), http.MethodDelete)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Saved job not found", resp["error"])
}

func TestSaveListUnsaveRoundTrip(t *testing.T) {
	engine := testEngine()
	seekerToken := token(t, database.TestUserSeeker1)
	path := fmt.Sprintf("/saved-jobs/%d", database.TestJob1.ID)

	rec, resp := testutil.MakeJSONRequest(nil, seekerToken, engine, path, http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, database.TestJob1.ID, resp["job_id"])

	// Saving twice hits the unique index
	rec, resp = testutil.MakeJSONRequest(nil, seekerToken, engine, path, http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already saved this job", resp["error"])

	rec, _ = testutil.MakeJSONRequest(nil, seekerToken, engine, "/saved-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), database.TestJob1.Title)

	rec, _ = testutil.MakeJSONRequest(nil, seekerToken, engine, path, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A second delete finds nothing
	rec, resp = testutil.MakeJSONRequest(nil, seekerToken, engine, path, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Saved job not found", resp["error"])

	var count int64
	assert.NoError(t, testDB.Model(&model.SavedJob{}).
		Where("job_seeker_id = ?", database.TestSeeker1.ID).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSaveJobCreatesSeekerProfile(t *testing.T) {
	engine := testEngine()

	rec, _ := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserPlain), engine,
		fmt.Sprintf("/saved-jobs/%d", database.TestJob2.ID), http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var seeker model.JobSeeker
	assert.NoError(t, testDB.Where("user_id = ?", database.TestUserPlain.ID).First(&seeker).Error)

	rec, _ = testutil.MakeJSONRequest(nil,
		token(t, database.TestUserPlain), engine, "/saved-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), database.TestJob2.Title)
}
