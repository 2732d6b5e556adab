package model

import "time"

// CategoryLabels maps the job-post form's category selector values to the
// fixed set of category names. A selector value outside this map is rejected.
var CategoryLabels = map[string]string{
	"it":          "IT & Software",
	"marketing":   "Marketing",
	"design":      "Design",
	"finance":     "Finance",
	"healthcare":  "Healthcare",
	"education":   "Education",
	"engineering": "Engineering",
	"sales":       "Sales",
}

// Category groups jobs. Rows are created on demand from CategoryLabels when
// the first job in a category is posted.
type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Name        string `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Jobs []Job `gorm:"foreignKey:CategoryID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// CategoryCount is one row of the categories API response.
type CategoryCount struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	JobCount int64  `json:"job_count"`
}
