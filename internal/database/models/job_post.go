package models

import (
	"time"

	"github.com/lib/pq"
)

// JobPost is a posting published by a client user
type JobPost struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ClientID    uint           `gorm:"not null;index" json:"clientId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Budget      int64          `gorm:"not null;default:0" json:"budget"`
	Skills      pq.StringArray `gorm:"type:text[];default:'{}'" json:"skills"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Relationships
	Client *User `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (JobPost) TableName() string {
	return "job_posts"
}
