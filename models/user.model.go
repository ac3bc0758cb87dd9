package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Course IDs the user bookmarked, kept as a JSON array on the row
	Favorites datatypes.JSONSlice[uint] `json:"favorites"`

	ResetPasswordToken   *string    `gorm:"index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

// HasFavorite reports whether courseID is already in the favorites list.
func (u *User) HasFavorite(courseID uint) bool {
	for _, id := range u.Favorites {
		if id == courseID {
			return true
		}
	}
	return false
}

// RemoveFavorite drops courseID from the favorites list if present.
func (u *User) RemoveFavorite(courseID uint) {
	kept := make(datatypes.JSONSlice[uint], 0, len(u.Favorites))
	for _, id := range u.Favorites {
		if id != courseID {
			kept = append(kept, id)
		}
	}
	u.Favorites = kept
}
