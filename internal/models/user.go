// Package models contains data structures for the blog's domain models.
package models

import "time"

const (
	// DefaultImagePath is served when a user has no profile picture.
	DefaultImagePath = "/static/profile_pics/default.jpg"
	// ProfilePicsPrefix is where uploaded profile pictures are served from.
	ProfilePicsPrefix = "/media/profile_pics/"
)

// User represents a registered author.
//
// Uniqueness of username and email is enforced case-insensitively by
// expression indexes created in database.Migrate, not by column tags.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:50;not null"`
	Email        string    `gorm:"size:120;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	ImageFile    *string   `gorm:"size:200"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ImagePath is the URL path of the user's profile picture.
func (u *User) ImagePath() string {
	if u.ImageFile == nil || *u.ImageFile == "" {
		return DefaultImagePath
	}
	return ProfilePicsPrefix + *u.ImageFile
}

// PublicUser is the projection of a user visible to everyone.
type PublicUser struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	ImageFile *string `json:"image_file"`
	ImagePath string  `json:"image_path"`
}

// PrivateUser is the projection of a user visible to that user only.
type PrivateUser struct {
	PublicUser
	Email string `json:"email"`
}

// ToPublic builds the public projection.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		ImageFile: u.ImageFile,
		ImagePath: u.ImagePath(),
	}
}

// ToPrivate builds the self projection, which adds the email address.
func (u *User) ToPrivate() PrivateUser {
	return PrivateUser{
		PublicUser: u.ToPublic(),
		Email:      u.Email,
	}
}
