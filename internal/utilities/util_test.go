package utilities

import (
	"testing"

	"Jobportal-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMergeNonEmpty(t *testing.T) {
	dst := model.EditableSeekerInfo{
		Phone:    "0100000001",
		Location: "Austin",
		Skills:   "Go",
	}
	src := model.EditableSeekerInfo{
		Location: "Chicago",
		About:    "New about text",
	}

	MergeNonEmpty(&dst, &src)

	assert.Equal(t, "Chicago", dst.Location)
	assert.Equal(t, "New about text", dst.About)
	// Empty source fields leave the destination untouched
	assert.Equal(t, "0100000001", dst.Phone)
	assert.Equal(t, "Go", dst.Skills)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, VerifyPassword(hashed, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hashed, "wrong password"))
}

func TestContains(t *testing.T) {
	list := []string{".pdf", ".doc"}
	assert.True(t, Contains(list, ".pdf"))
	assert.False(t, Contains(list, ".png"))
}
