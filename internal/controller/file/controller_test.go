package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"Jobportal-backend/internal/auth"
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/middleware"
	"Jobportal-backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
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

func testEngine(storage StorageClient) *gin.Engine {
	ctrl := NewFileController(testDB, storage)
	r := gin.New()
	protected := r.Group("", middleware.RequireAuth(testDB))
	protected.POST("/seeker/profile/resume", ctrl.UploadResume)
	protected.POST("/seeker/profile/picture", ctrl.UploadPicture)
	protected.GET("/file/:id", ctrl.GetFile)
	return r
}

func multipartUpload(t *testing.T, engine *gin.Engine, endpoint, field, filename, token string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, endpoint, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func seekerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, *database.TestUserSeeker1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestPersistFileData_UsesCloudStorage(t *testing.T) {
	mockStorage := newMockStorageClient()
	ctrl := NewFileController(nil, mockStorage)
	file := &model.File{}
	data := []byte("hello world")

	err := ctrl.persistFileData(file, data, ".pdf", resumeObjectPrefix)
	require.NoError(t, err)

	require.NotNil(t, file.StorageObjectName)
	require.True(t, strings.HasPrefix(*file.StorageObjectName, resumeObjectPrefix+"/"))
	require.Nil(t, file.Content)
	require.Equal(t, ".pdf", file.Extension)
	require.Contains(t, mockStorage.uploaded, *file.StorageObjectName)
	require.Equal(t, data, mockStorage.uploaded[*file.StorageObjectName])
}

func TestPersistFileData_FallsBackToDatabase(t *testing.T) {
	ctrl := NewFileController(nil, nil)
	file := &model.File{}
	data := []byte("legacy")

	err := ctrl.persistFileData(file, data, ".png", pictureObjectPrefix)
	require.NoError(t, err)

	require.Nil(t, file.StorageObjectName)
	require.Equal(t, data, file.Content)
	require.Equal(t, ".png", file.Extension)
}

func TestPersistFileData_UploadError(t *testing.T) {
	mockStorage := newMockStorageClient()
	mockStorage.uploadErr = errors.New("boom")
	ctrl := NewFileController(nil, mockStorage)
	file := &model.File{}

	err := ctrl.persistFileData(file, []byte("fail"), ".pdf", resumeObjectPrefix)
	require.Error(t, err)
	require.EqualError(t, err, "boom")
}

func TestWriteFileResponse_CloudStorage(t *testing.T) {
	mockStorage := newMockStorageClient()
	mockStorage.downloadPayload["resumes/foo"] = []byte("downloaded")
	ctrl := NewFileController(nil, mockStorage)
	objectName := "resumes/foo"
	file := &model.File{ID: 42, Extension: ".pdf", StorageObjectName: &objectName}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ctrl.writeFileResponse(c, file)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "downloaded", w.Body.String())
	require.Equal(t, "attachment; filename=42.pdf", w.Header().Get("Content-Disposition"))
	require.Equal(t, fmt.Sprint(len("downloaded")), w.Header().Get("Content-Length"))
}

func TestWriteFileResponse_LegacyContent(t *testing.T) {
	ctrl := NewFileController(nil, nil)
	legacyContent := []byte("legacy")
	file := &model.File{ID: 7, Extension: ".jpg", Content: legacyContent}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ctrl.writeFileResponse(c, file)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, legacyContent, w.Body.Bytes())
	require.Equal(t, fmt.Sprint(len(legacyContent)), w.Header().Get("Content-Length"))
}

func TestWriteFileResponse_RemoteButStorageDisabled(t *testing.T) {
	ctrl := NewFileController(nil, nil)
	objectName := "pictures/foo"
	file := &model.File{ID: 8, Extension: ".png", StorageObjectName: &objectName}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ctrl.writeFileResponse(c, file)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Cloud storage is disabled")
}

func TestUploadResume_RejectsWrongExtension(t *testing.T) {
	engine := testEngine(nil)
	token := seekerToken(t)

	rec := multipartUpload(t, engine, "/seeker/profile/resume", "resume", "resume.docx", token, []byte("not a pdf"))

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "Unsupported file extension: .docx")
}

func TestUploadPicture_RejectsWrongExtension(t *testing.T) {
	engine := testEngine(nil)
	token := seekerToken(t)

	rec := multipartUpload(t, engine, "/seeker/profile/picture", "picture", "avatar.gif", token, []byte("gif bytes"))

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "Unsupported file extension: .gif")
}

func TestUploadResume_StoresPDF(t *testing.T) {
	engine := testEngine(nil)
	token := seekerToken(t)
	content := []byte("%PDF-1.4 fake resume")

	rec := multipartUpload(t, engine, "/seeker/profile/resume", "resume", "resume.PDF", token, content)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var seeker model.JobSeeker
	require.NoError(t, testDB.Where("user_id = ?", database.TestUserSeeker1.ID).First(&seeker).Error)
	require.NotNil(t, seeker.ResumeID)

	// Stored without cloud storage, so the content comes back from the database
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/file/%d", *seeker.ResumeID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	download := httptest.NewRecorder()
	engine.ServeHTTP(download, req)

	require.Equal(t, http.StatusOK, download.Code)
	require.Equal(t, content, download.Body.Bytes())
	require.Equal(t, fmt.Sprintf("attachment; filename=%d.pdf", *seeker.ResumeID),
		download.Header().Get("Content-Disposition"))
}

func TestGetFile_NotFound(t *testing.T) {
	engine := testEngine(nil)
	token := seekerToken(t)

	req, _ := http.NewRequest(http.MethodGet, "/file/999999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "File not found")
}

type mockStorageClient struct {
	uploaded        map[string][]byte
	downloadPayload map[string][]byte
	uploadErr       error
	downloadErr     error
}

func newMockStorageClient() *mockStorageClient {
	return &mockStorageClient{
		uploaded:        make(map[string][]byte),
		downloadPayload: make(map[string][]byte),
	}
}

func (m *mockStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	buf, err := io.ReadAll(fileData)
	if err != nil {
		return err
	}
	m.uploaded[objectName] = buf
	return nil
}

func (m *mockStorageClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	if m.downloadErr != nil {
		return nil, 0, m.downloadErr
	}
	data, ok := m.downloadPayload[objectName]
	if !ok {
		return nil, 0, fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (m *mockStorageClient) ListObjects() ([]string, error) {
	return nil, nil
}
