package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskCompleted TaskStatus = "COMPLETED"
)

// Task is a unit of work assigned to one or more lawyers.
type Task struct {
	ID            string      `bson:"id" json:"id"`
	Title         string      `bson:"title" json:"title"`
	Description   string      `bson:"description,omitempty" json:"description,omitempty"`
	Status        TaskStatus  `bson:"status" json:"status"`
	EndDate       string      `bson:"endDate" json:"endDate"` // YYYY-MM-DD or YYYY-MM-DDTHH:MM
	LawyerDetails []LawyerRef `bson:"lawyerDetails" json:"lawyerDetails"`
	CreatedBy     string      `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}
