package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"Jobportal-backend/internal/auth"
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// whoAmI echoes the user set by RequireAuth.
func whoAmI(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

func callWithToken(handlers []gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/protected", append(handlers, whoAmI)...)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "NotBearer xyz")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid authorization header")
}

func TestRequireAuthGarbageToken(t *testing.T) {
	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	token, _, err := auth.GenerateStandardToken(database.TestUserSeeker1.ID)
	assert.NoError(t, err)

	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), database.TestUserSeeker1.Username)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, _, err := auth.GenerateTokenWithDuration(database.TestUserSeeker1.ID, -time.Hour, auth.JwtIssuer)
	assert.NoError(t, err)

	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access token expired")
}

func TestRequireAuthWrongIssuer(t *testing.T) {
	token, _, err := auth.GenerateTokenWithDuration(database.TestUserSeeker1.ID, time.Hour, "someone-else")
	assert.NoError(t, err)

	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token issuer")
}

func TestRequireAuthUnknownUser(t *testing.T) {
	token, _, err := auth.GenerateStandardToken(uuid.New())
	assert.NoError(t, err)

	rec := callWithToken([]gin.HandlerFunc{RequireAuth(testDB)}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not exist")
}

func TestRequireEmployer(t *testing.T) {
	handlers := []gin.HandlerFunc{RequireAuth(testDB), RequireEmployer(testDB)}

	token, _, err := auth.GenerateStandardToken(database.TestUserEmployer1.ID)
	assert.NoError(t, err)
	rec := callWithToken(handlers, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token, _, err = auth.GenerateStandardToken(database.TestUserSeeker1.ID)
	assert.NoError(t, err)
	rec = callWithToken(handlers, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "permission")
}

func TestJwtBlacklistCheck(t *testing.T) {
	blacklist := auth.NewInMemoryBlacklistStore()
	handlers := []gin.HandlerFunc{RequireAuth(testDB), JwtBlacklistCheck(blacklist)}

	token, _, err := auth.GenerateStandardToken(database.TestUserSeeker1.ID)
	assert.NoError(t, err)

	rec := callWithToken(handlers, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, blacklist.AddToBlacklist(token, time.Now().Add(time.Hour)))

	rec = callWithToken(handlers, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has been revoked")
}
