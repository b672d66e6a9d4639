package model

import "time"

// Category groups tasks under a shared label. Categories are global, not
// per-user; deleting one removes every task that references it.
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CategoryName string    `json:"category_name" gorm:"size:25;uniqueIndex;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
