package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultRoleID is the role every user gets at registration
const DefaultRoleID uint = 1

// User represents the user domain entity
type User struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Email       string          `gorm:"uniqueIndex;not null" json:"email"`
	Password    string          `gorm:"not null" json:"-"`
	RoleID      uint            `gorm:"not null;index" json:"role_id"`
	GenderID    *uint           `gorm:"index" json:"gender_id,omitempty"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	PostalCode  *string         `json:"postal_code,omitempty"`
	HomeAddress *string         `json:"home_address,omitempty"`
	JobTitle    *string         `json:"job_title,omitempty"`
	Bio         *string         `json:"bio,omitempty"`
	BirthDate   *datatypes.Date `json:"birth_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`

	// Owned collections
	Skills           []UserSkill           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Languages        []UserLanguage        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SocialLinks      []UserSocialLink      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	EducationDegrees []UserEducationDegree `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WorkExperiences  []UserWorkExperience  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Portfolios       []UserPortfolio       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Role is a lookup row resolved to its display name on reads
type Role struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	RoleName string `gorm:"uniqueIndex;not null" json:"role_name"`
}

// TableName overrides the table name
func (Role) TableName() string {
	return "roles"
}

// Gender is a lookup row resolved to its display name on reads
type Gender struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	GenderName string `gorm:"uniqueIndex;not null" json:"gender_name"`
}

// TableName overrides the table name
func (Gender) TableName() string {
	return "genders"
}
