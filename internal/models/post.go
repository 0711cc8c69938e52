package models

import "time"

// Post represents a blog post owned by exactly one User.
type Post struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"size:100;not null"`
	Content    string    `gorm:"type:text;not null"`
	DatePosted time.Time `gorm:"not null;index"`
	UserID     uint      `gorm:"not null;index"`
	// Author is loaded explicitly with Preload; it is never written through.
	Author User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// PostResponse is the JSON shape of a post.
type PostResponse struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	DatePosted time.Time  `json:"date_posted"`
	UserID     uint       `json:"user_id"`
	Author     PublicUser `json:"author"`
}

// ToResponse builds the JSON shape, including the author's public projection.
func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		DatePosted: p.DatePosted,
		UserID:     p.UserID,
		Author:     p.Author.ToPublic(),
	}
}

// PostResponses maps a slice of posts to their JSON shapes.
func PostResponses(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].ToResponse())
	}
	return out
}
