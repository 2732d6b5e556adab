// Command-line tool to clean the database by dropping all tables in the
// public schema, optionally purging every object from cloud storage too.
package main

import (
	"Jobportal-backend/internal/controller/file"
	"Jobportal-backend/internal/database"
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

func main() {

	// Warning message
	fmt.Println("WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	if os.Getenv("GCS_BUCKET_NAME") != "" {
		fmt.Println("It will also DELETE EVERY OBJECT in the configured storage bucket.")
	}
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	// Ask for confirmation
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	// SQL command to drop all tables
	sql := `
	DO $$
		DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`

	// Execute raw SQL
	if err := db.Exec(sql).Error; err != nil {
		log.Fatalf("failed to execute drop command: %v", err)
	}

	fmt.Println("All tables dropped successfully.")

	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return
	}

	client, err := file.NewCloudStorageClient(bucket)
	if err != nil {
		log.Fatalf("failed to create storage client: %v", err)
	}

	objects, err := client.ListObjects()
	if err != nil {
		log.Fatalf("failed to list storage objects: %v", err)
	}

	for _, name := range objects {
		if err := client.DeleteObject(name); err != nil {
			log.Printf("failed to delete object %s: %v", name, err)
		}
	}

	fmt.Printf("Removed %d storage object(s).\n", len(objects))
}
