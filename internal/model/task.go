package model

import "time"

// Task is a single tracked item. TaskOwnerID is nullable at the schema
// level but the handlers always set it on creation.
type Task struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TaskName        string    `json:"task_name" gorm:"size:50;uniqueIndex;not null"`
	TaskDescription string    `json:"task_description" gorm:"type:text"`
	IsUrgent        bool      `json:"is_urgent" gorm:"not null;default:false"`
	DueDate         time.Time `json:"due_date" gorm:"type:date;not null"`
	CategoryID      uint      `json:"category_id" gorm:"not null;index"`
	TaskOwnerID     *uint     `json:"task_owner_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
