package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the one-to-one developer profile extension of a User.
// Experience and education rows belong exclusively to their profile and are
// loaded most-recent-first.
type Profile struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"user"`
	Handle         string      `gorm:"uniqueIndex;not null" json:"handle"`
	Company        string      `json:"company"`
	Website        string      `json:"website"`
	Location       string      `json:"location"`
	Status         string      `gorm:"not null" json:"status"`
	Bio            string      `json:"bio"`
	GithubUsername string      `json:"githubusername"`
	Skills         []string    `gorm:"serializer:json" json:"skills"`
	Social         SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"social"`

	Experience []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education  []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SocialLinks holds the optional social platform URLs of a profile.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a work history entry owned by a Profile.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `gorm:"column:from_date;not null" json:"from"`
	To          *time.Time `gorm:"column:to_date" json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a schooling entry owned by a Profile.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"column:from_date;not null" json:"from"`
	To           *time.Time `gorm:"column:to_date" json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}
