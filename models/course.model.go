package models

import "gorm.io/gorm"

const DefaultCategory = "Other"

type Course struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;default:''" json:"description"`
	Category    string `gorm:"default:'Other'" json:"category"`

	FileName   string `gorm:"not null" json:"fileName"`
	FilePath   string `gorm:"not null" json:"filePath"`   // public locator (URL or /uploads path)
	StorageKey string `gorm:"default:''" json:"-"`        // backend handle used for deletion
	FileSize   int64  `gorm:"not null" json:"fileSize"`

	OwnerID uint `gorm:"not null;index" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"owner"`

	Shared     bool    `gorm:"default:false" json:"shared"`
	ShareToken *string `gorm:"uniqueIndex" json:"shareToken,omitempty"`

	Views     uint `gorm:"default:0" json:"views"`
	Downloads uint `gorm:"default:0" json:"downloads"`

	// Derived from rated comments, see comment controller
	AverageRating float64 `gorm:"default:0" json:"averageRating"`
	RatingsCount  int     `gorm:"default:0" json:"ratingsCount"`
}

// CourseGrant gives one user read access to one course without making it public.
type CourseGrant struct {
	gorm.Model
	CourseID uint `gorm:"not null;uniqueIndex:idx_course_grant" json:"courseId"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_course_grant" json:"userId"`
}
