package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "Jobportal-backend/internal/model"
	"Jobportal-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestUserSeeker1   m.User
	TestUserSeeker2   m.User
	TestUserEmployer1 m.User
	TestUserEmployer2 m.User
	// TestUserPlain has neither a seeker nor an employer profile.
	TestUserPlain m.User

	TestSeeker1   m.JobSeeker
	TestSeeker2   m.JobSeeker
	TestEmployer1 m.Employer
	TestEmployer2 m.Employer

	TestCategoryIT        m.Category
	TestCategoryMarketing m.Category

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded jobs. TestJob3 belongs to TestEmployer2 and is already
	// past its deadline.
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample seeker and employer users
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample JobSeeker and Employer records (2 each) plus a
// profile-less user and three jobs, unless data already exists.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore staff user that got create during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		username  string
		email     *string
		firstName string
		lastName  string
	}{
		{"seeker_one", ptr("seeker1@example.com"), "Alice", "Carver"},
		{"seeker_two", ptr("seeker2@example.com"), "Bob", "Mensah"},
		{"employer_one", ptr("employer1@example.com"), "Carol", "Lindqvist"},
		{"employer_two", ptr("employer2@example.com"), "Dan", "Okafor"},
		{"plain_user", ptr("plain@example.com"), "", ""},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: s.username,
			Email:    s.email,
			Password: hashedPwd,
			IsActive: true,
			EditableUserInfo: m.EditableUserInfo{
				FirstName: s.firstName,
				LastName:  s.lastName,
			},
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Map created users to exported variables
	for _, u := range users {
		switch u.Username {
		case "seeker_one":
			TestUserSeeker1 = u
		case "seeker_two":
			TestUserSeeker2 = u
		case "employer_one":
			TestUserEmployer1 = u
		case "employer_two":
			TestUserEmployer2 = u
		case "plain_user":
			TestUserPlain = u
		}
	}

	seekers := []m.JobSeeker{
		{
			UserID: TestUserSeeker1.ID,
			EditableSeekerInfo: m.EditableSeekerInfo{
				Phone:      "0100000001",
				Location:   "Austin",
				Skills:     "Marketing, SEO, Copywriting",
				Experience: "2 years in digital marketing",
				Education:  "BA Communications",
				About:      "Marketing generalist looking for growth roles.",
			},
		},
		{
			UserID: TestUserSeeker2.ID,
			EditableSeekerInfo: m.EditableSeekerInfo{
				Phone:    "0100000002",
				Location: "Remote",
			},
		},
	}
	if err := db.Create(&seekers).Error; err != nil {
		return err
	}

	employers := []m.Employer{
		{
			UserID: TestUserEmployer1.ID,
			EditableEmployerInfo: m.EditableEmployerInfo{
				CompanyName:        "TechNova",
				CompanyDescription: "Innovative platform solutions",
				Location:           "Austin",
			},
		},
		{
			UserID: TestUserEmployer2.ID,
			EditableEmployerInfo: m.EditableEmployerInfo{
				CompanyName:        "DataForge",
				CompanyDescription: "Data analytics consulting",
				Location:           "Denver",
			},
		},
	}
	if err := db.Create(&employers).Error; err != nil {
		return err
	}

	// Assign exported profile structs
	TestSeeker1 = seekers[0]
	TestSeeker2 = seekers[1]
	TestEmployer1 = employers[0]
	TestEmployer2 = employers[1]

	categories := []m.Category{
		{Name: "IT & Software"},
		{Name: "Marketing"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	TestCategoryIT = categories[0]
	TestCategoryMarketing = categories[1]

	// Seed jobs (only if none exist yet)
	var jobCount int64
	if err := db.Model(&m.Job{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		open1 := time.Now().AddDate(0, 1, 0)
		open2 := time.Now().AddDate(0, 2, 0)
		past := time.Now().AddDate(0, 0, -7)

		jobs := []m.Job{
			{
				CategoryID: TestCategoryIT.ID,
				EmployerID: TestEmployer1.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:        "Backend Engineer",
					Description:  "Work on Go services and database layers.",
					Requirements: "Go basics; SQL familiarity",
					Location:     "Austin (Hybrid)",
					JobType:      m.JobTypeFullTime,
					Salary:       "95000 USD",
					Deadline:     open1,
				},
			},
			{
				CategoryID: TestCategoryMarketing.ID,
				EmployerID: TestEmployer1.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:        "Content Marketer",
					Description:  "Own the blog and campaign copy.",
					Requirements: "Writing samples; SEO familiarity",
					Location:     "Remote",
					JobType:      m.JobTypeRemote,
					Salary:       "70000 USD",
					Deadline:     open2,
				},
			},
			{
				CategoryID: TestCategoryIT.ID,
				EmployerID: TestEmployer2.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:        "Data Analyst",
					Description:  "Support data cleansing and dashboards.",
					Requirements: "SQL; basic statistics",
					Location:     "Denver (On-site)",
					JobType:      m.JobTypeContract,
					Salary:       "60000 USD",
					Deadline:     past,
				},
			},
		}

		if err := db.Create(&jobs).Error; err != nil {
			return err
		}
		TestJob1 = jobs[0]
		TestJob2 = jobs[1]
		TestJob3 = jobs[2]
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"seeker_one", "seeker_two", "employer_one", "employer_two", "plain_user",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "seeker_one":
			TestUserSeeker1 = u
		case "seeker_two":
			TestUserSeeker2 = u
		case "employer_one":
			TestUserEmployer1 = u
		case "employer_two":
			TestUserEmployer2 = u
		case "plain_user":
			TestUserPlain = u
		}
	}

	if err := db.First(&TestSeeker1, "user_id = ?", TestUserSeeker1.ID).Error; err != nil {
		return err
	}
	if err := db.First(&TestSeeker2, "user_id = ?", TestUserSeeker2.ID).Error; err != nil {
		return err
	}
	if err := db.First(&TestEmployer1, "user_id = ?", TestUserEmployer1.ID).Error; err != nil {
		return err
	}
	if err := db.First(&TestEmployer2, "user_id = ?", TestUserEmployer2.ID).Error; err != nil {
		return err
	}

	if err := db.First(&TestCategoryIT, "name = ?", "IT & Software").Error; err != nil {
		return err
	}
	if err := db.First(&TestCategoryMarketing, "name = ?", "Marketing").Error; err != nil {
		return err
	}

	// Load first three jobs deterministically
	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
