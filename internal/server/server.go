package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"Jobportal-backend/internal/auth"
	"Jobportal-backend/internal/controller/file"
	"Jobportal-backend/internal/database"
	"Jobportal-backend/internal/mail"
)

// MyServer bundles the shared dependencies handed to every controller.
type MyServer struct {
	DB        *database.DBinstanceStruct
	Mailer    mail.Mailer
	Storage   file.StorageClient
	Blacklist auth.JwtBlacklistStore
}

// NewServer constructs the HTTP server with all dependencies wired. Cloud
// storage is optional: without GCS_BUCKET_NAME uploads stay in the database.
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	var storage file.StorageClient
	if bucket := os.Getenv("GCS_BUCKET_NAME"); bucket != "" {
		client, err := file.NewCloudStorageClient(bucket)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialized: %s", err)
		}
		storage = client
	}

	s := &MyServer{
		DB:        db,
		Mailer:    mail.NewSMTPMailer(),
		Storage:   storage,
		Blacklist: auth.NewInMemoryBlacklistStore(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
