// Package model contains the gorm models for the job board.
package model

// MigrateAble is the list of model instances used for migrating the database.
var MigrateAble []interface{}

func init() {
	MigrateAble = append(
		MigrateAble,
		&User{},
		&JobSeeker{},
		&Employer{},
		&Category{},
		&File{},
		&Job{},
		&JobApplication{},
		&SavedJob{},
		&ProfileView{},
		&ApplicationNotification{},
	)
}
