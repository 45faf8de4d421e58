package model

import "time"

// List groups tasks under a single owning user.
type List struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tasks       []Task    `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"-"`
}
