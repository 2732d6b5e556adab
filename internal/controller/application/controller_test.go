package application

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
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

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer captures outgoing mail instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (r *recordingMailer) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (r *recordingMailer) all() []sentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMail{}, r.sent...)
}

func testEngine(mailer *recordingMailer) *gin.Engine {
	ctrl := NewApplicationController(testDB, mailer)
	r := gin.New()
	protected := r.Group("", middleware.RequireAuth(testDB))
	protected.POST("/jobs/:id/apply", ctrl.Apply)
	protected.GET("/applications", ctrl.GetMyApplications)
	protected.GET("/applications/:id", ctrl.GetApplicationByID)
	protected.PATCH("/applications/:id/status", ctrl.UpdateStatus)
	return r
}

func token(t *testing.T, user model.User) string {
	t.Helper()
	tok, err := auth.GetAccessToken(t, testDB, *user.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	return tok
}

func TestApplyJobNotFound(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, resp := testutil.MakeJSONRequest(gin.H{"cover_letter": "Hi"},
		token(t, database.TestUserSeeker1), engine, "/jobs/999999/apply", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["error"])
}

func TestApplyToExpiredJob(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, resp := testutil.MakeJSONRequest(gin.H{"cover_letter": "Hi"},
		token(t, database.TestUserSeeker1), engine,
		fmt.Sprintf("/jobs/%d/apply", database.TestJob3.ID), http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This job listing is no longer accepting applications", resp["error"])
}

func TestApplyInvalidResumeReference(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, resp := testutil.MakeJSONRequest(gin.H{"cover_letter": "Hi", "resume_id": 999999},
		token(t, database.TestUserSeeker2), engine,
		fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID), http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid resume reference")
}

func TestApplySendsNotifications(t *testing.T) {
	mailer := &recordingMailer{}
	engine := testEngine(mailer)

	rec, resp := testutil.MakeJSONRequest(gin.H{"cover_letter": "I would love this role."},
		token(t, database.TestUserSeeker1), engine,
		fmt.Sprintf("/jobs/%d/apply", database.TestJob1.ID), http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.ApplicationStatusPending, resp["status"])
	assert.Equal(t, "I would love this role.", resp["cover_letter"])

	// In-app notification row for the job's employer
	var notifications []model.ApplicationNotification
	assert.NoError(t, testDB.
		Where("employer_id = ?", database.TestEmployer1.ID).
		Find(&notifications).Error)
	assert.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)

	// One mail to each side
	sent := mailer.all()
	assert.Len(t, sent, 2)
	assert.Equal(t, *database.TestUserEmployer1.Email, sent[0].To)
	assert.Contains(t, sent[0].Subject, database.TestJob1.Title)
	assert.Equal(t, *database.TestUserSeeker1.Email, sent[1].To)
	assert.Contains(t, sent[1].Subject, "Application received")
}

func TestApplyDuplicate(t *testing.T) {
	mailer := &recordingMailer{}
	engine := testEngine(mailer)

	rec, resp := testutil.MakeJSONRequest(gin.H{"cover_letter": "Second try"},
		token(t, database.TestUserSeeker1), engine,
		fmt.Sprintf("/jobs/%d/apply", database.TestJob1.ID), http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already applied for this job.", resp["error"])
	assert.Empty(t, mailer.all())

	var count int64
	assert.NoError(t, testDB.Model(&model.JobApplication{}).
		Where("job_id = ? AND job_seeker_id = ?", database.TestJob1.ID, database.TestSeeker1.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyCreatesSeekerProfile(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, _ := testutil.MakeJSONRequest(gin.H{"cover_letter": "First profile-less apply"},
		token(t, database.TestUserPlain), engine,
		fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID), http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var seeker model.JobSeeker
	assert.NoError(t, testDB.Where("user_id = ?", database.TestUserPlain.ID).First(&seeker).Error)
}

func TestGetMyApplications(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, _ := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserSeeker1), engine, "/applications", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), database.TestJob1.Title)
}

func TestGetMyApplicationsWithoutProfile(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, _ := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserEmployer1), engine, "/applications", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func seededApplicationID(t *testing.T) uint {
	t.Helper()
	var application model.JobApplication
	assert.NoError(t, testDB.
		Where("job_id = ? AND job_seeker_id = ?", database.TestJob1.ID, database.TestSeeker1.ID).
		First(&application).Error)
	return application.ID
}

func TestGetApplicationByIDOwnership(t *testing.T) {
	engine := testEngine(&recordingMailer{})
	id := seededApplicationID(t)

	// The employer owning the listing can read it
	rec, resp := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserEmployer1), engine,
		fmt.Sprintf("/applications/%d", id), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "I would love this role.", resp["cover_letter"])

	// A different employer cannot
	rec, resp = testutil.MakeJSONRequest(nil,
		token(t, database.TestUserEmployer2), engine,
		fmt.Sprintf("/applications/%d", id), http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only view applications on your own job listings", resp["error"])
}

func TestGetApplicationByIDNotFound(t *testing.T) {
	engine := testEngine(&recordingMailer{})

	rec, resp := testutil.MakeJSONRequest(nil,
		token(t, database.TestUserEmployer1), engine, "/applications/999999", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Application not found", resp["error"])
}

func TestUpdateStatus(t *testing.T) {
	engine := testEngine(&recordingMailer{})
	id := seededApplicationID(t)
	employerToken := token(t, database.TestUserEmployer1)
	path := fmt.Sprintf("/applications/%d/status", id)

	// Missing status
	rec, resp := testutil.MakeJSONRequest(gin.H{}, employerToken, engine, path, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Status must be provided", resp["error"])

	// pending -> accepted is not allowed
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted},
		employerToken, engine, path, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// pending -> reviewed -> accepted
	rec, resp = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusReviewed},
		employerToken, engine, path, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.ApplicationStatusReviewed, resp["status"])

	rec, resp = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted},
		employerToken, engine, path, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ApplicationStatusAccepted, resp["status"])

	// Terminal state rejects further changes
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusRejected},
		employerToken, engine, path, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var stored model.JobApplication
	assert.NoError(t, testDB.First(&stored, id).Error)
	assert.Equal(t, model.ApplicationStatusAccepted, stored.Status)
}

func TestUpdateStatusNonOwner(t *testing.T) {
	engine := testEngine(&recordingMailer{})
	id := seededApplicationID(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusReviewed},
		token(t, database.TestUserEmployer2), engine,
		fmt.Sprintf("/applications/%d/status", id), http.MethodPatch)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
