package types

import "time"

// Submission is one accepted form submission. Append-only: the pipeline
// never updates or deletes rows; id and created_at are store-assigned.
type Submission struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
}

func (Submission) TableName() string { return "submissions" }
