package models

import (
	"gorm.io/datatypes"
)

// Rows below belong to exactly one user and are only written through the
// user's collection replacement. Each ID doubles as the insertion order.

// UserSkill is one skill tag of a user
type UserSkill struct {
	ID     uint   `gorm:"primarykey" json:"-"`
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_user_skill" json:"userId"`
	Skill  string `gorm:"not null;uniqueIndex:idx_user_skill" json:"skill"`
}

// TableName overrides the table name
func (UserSkill) TableName() string {
	return "user_skills"
}

// SetOwner stamps the owning user
func (s *UserSkill) SetOwner(userID uint) {
	s.UserID = userID
}

// UserLanguage is one spoken language of a user
type UserLanguage struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	UserID       uint   `gorm:"not null;index;uniqueIndex:idx_user_language" json:"userId"`
	LanguageName string `gorm:"not null;uniqueIndex:idx_user_language" json:"languageName"`
}

// TableName overrides the table name
func (UserLanguage) TableName() string {
	return "user_languages"
}

// SetOwner stamps the owning user
func (l *UserLanguage) SetOwner(userID uint) {
	l.UserID = userID
}

// UserSocialLink is one profile link of a user
type UserSocialLink struct {
	ID     uint   `gorm:"primarykey" json:"-"`
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_user_social_link" json:"userId"`
	Link   string `gorm:"not null;uniqueIndex:idx_user_social_link" json:"link"`
}

// TableName overrides the table name
func (UserSocialLink) TableName() string {
	return "user_social_links"
}

// SetOwner stamps the owning user
func (l *UserSocialLink) SetOwner(userID uint) {
	l.UserID = userID
}

// UserEducationDegree is one degree of a user; EndDate is nil while studying
type UserEducationDegree struct {
	ID        uint            `gorm:"primarykey" json:"-"`
	UserID    uint            `gorm:"not null;index" json:"userId"`
	Title     string          `gorm:"not null" json:"title"`
	StartDate datatypes.Date  `gorm:"not null" json:"startDate"`
	EndDate   *datatypes.Date `json:"endDate"`
}

// TableName overrides the table name
func (UserEducationDegree) TableName() string {
	return "user_education_degrees"
}

// SetOwner stamps the owning user
func (d *UserEducationDegree) SetOwner(userID uint) {
	d.UserID = userID
}

// UserWorkExperience is one position held by a user; EndDate is nil for the current job
type UserWorkExperience struct {
	ID        uint            `gorm:"primarykey" json:"-"`
	UserID    uint            `gorm:"not null;index" json:"userId"`
	JobTitle  string          `gorm:"not null" json:"jobTitle"`
	Company   string          `gorm:"not null" json:"company"`
	StartDate datatypes.Date  `gorm:"not null" json:"startDate"`
	EndDate   *datatypes.Date `json:"endDate"`
}

// TableName overrides the table name
func (UserWorkExperience) TableName() string {
	return "user_work_experiences"
}

// SetOwner stamps the owning user
func (w *UserWorkExperience) SetOwner(userID uint) {
	w.UserID = userID
}

// UserPortfolio is one showcased project of a user
type UserPortfolio struct {
	ID          uint           `gorm:"primarykey" json:"-"`
	UserID      uint           `gorm:"not null;index" json:"userId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null;default:''" json:"description"`
	URL         string         `gorm:"not null;default:''" json:"url"`
	Skills      datatypes.JSON `gorm:"not null" json:"skills"` // JSON array of tags
}

// TableName overrides the table name
func (UserPortfolio) TableName() string {
	return "user_portfolios"
}

// SetOwner stamps the owning user
func (p *UserPortfolio) SetOwner(userID uint) {
	p.UserID = userID
}
