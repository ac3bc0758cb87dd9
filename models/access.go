package models

import "gorm.io/gorm"

// CanAccess reports whether userID may read the course: owner, public
// course, or explicit grantee. The unauthenticated share-token path never
// goes through here.
func CanAccess(db *gorm.DB, course *Course, userID uint) bool {
	if course.OwnerID == userID || course.Shared {
		return true
	}
	var count int64
	db.Model(&CourseGrant{}).
		Where("course_id = ? AND user_id = ?", course.ID, userID).
		Count(&count)
	return count > 0
}

// CanModify is strictly narrower than CanAccess: only the owner may
// mutate a course (metadata, deletion, share toggling, grants).
func CanModify(course *Course, userID uint) bool {
	return course.OwnerID == userID
}
