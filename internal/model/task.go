package model

import "time"

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

const TasksKey = "tasks"

type Task struct {
	ID             string       `json:"id"`
	AssignedTo     string       `json:"assignedTo"`
	AssignedToName string       `json:"assignedToName"`
	AssignedBy     string       `json:"assignedBy"`
	AssignedByName string       `json:"assignedByName"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	DueDate        string       `json:"dueDate"`
	CreatedAt      time.Time    `json:"createdAt"`
}
