package model

import "time"

// User represents a registered account. Password always holds the bcrypt
// hash, never the submitted plaintext.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:25;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:200;not null"` // Never expose in JSON
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:TaskOwnerID;constraint:OnDelete:CASCADE"`
}
