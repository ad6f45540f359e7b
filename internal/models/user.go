package models

import "strings"

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FirstName string  `gorm:"type:text;not null" json:"first_name"`
	LastName  string  `gorm:"type:text;not null" json:"last_name"`
	ImageURL  *string `gorm:"type:text" json:"image_url"` // Optional avatar
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Avatar returns the image URL or an empty string when none is set.
func (u User) Avatar() string {
	if u.ImageURL == nil {
		return ""
	}
	return *u.ImageURL
}
