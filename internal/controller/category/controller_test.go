package category

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/model"

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

func callCategoriesAPI(t *testing.T) []model.CategoryCount {
	t.Helper()

	r := gin.New()
	r.GET("/api/categories", NewCategoryController(testDB).CategoriesAPI)

	req, _ := http.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var counts []model.CategoryCount
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	return counts
}

func TestCategoriesAPICounts(t *testing.T) {
	counts := callCategoriesAPI(t)
	assert.Len(t, counts, 2)

	byName := map[string]int64{}
	for _, c := range counts {
		byName[c.Name] = c.JobCount
	}
	// The expired listing is still active, so it counts
	assert.EqualValues(t, 2, byName[database.TestCategoryIT.Name])
	assert.EqualValues(t, 1, byName[database.TestCategoryMarketing.Name])
}

func TestCategoriesAPIIncludesEmptyCategories(t *testing.T) {
	assert.NoError(t, testDB.Create(&model.Category{Name: "Zoology"}).Error)

	counts := callCategoriesAPI(t)
	assert.Len(t, counts, 3)

	// Sorted by name, zero-count categories included
	assert.Equal(t, "Zoology", counts[2].Name)
	assert.EqualValues(t, 0, counts[2].JobCount)
}

func TestCategoriesAPIIgnoresInactiveJobs(t *testing.T) {
	assert.NoError(t, testDB.Model(&model.Job{}).
		Where("id = ?", database.TestJob3.ID).
		Update("is_active", false).Error)

	counts := callCategoriesAPI(t)

	byName := map[string]int64{}
	for _, c := range counts {
		byName[c.Name] = c.JobCount
	}
	assert.EqualValues(t, 1, byName[database.TestCategoryIT.Name])
}
