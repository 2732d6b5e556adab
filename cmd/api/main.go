package main

import (
	"log"

	"Jobportal-backend/internal/server"
)

// @title Jobportal API
// @version 1.0
// @description Backend API for the Jobportal job board.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("cannot start server: %s", err)
	}
}
