package model

// File stores an uploaded resume or profile picture. Content lives in the
// row unless a cloud storage client is configured, in which case the bytes
// live in the bucket and StorageObjectName points at the object.
type File struct {
	ID                int `gorm:"primaryKey"`
	Content           []byte
	Extension         string
	StorageObjectName *string
}
