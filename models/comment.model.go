package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	CourseID uint   `gorm:"not null;index" json:"courseId"`
	UserID   uint   `gorm:"not null" json:"userId"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Text     string `gorm:"type:text;not null" json:"text"`
	// Optional 1-5 star rating; nil means the comment carries no rating
	// and stays out of the course aggregate.
	Rating *int `gorm:"check:rating >= 1 AND rating <= 5" json:"rating,omitempty"`
}
