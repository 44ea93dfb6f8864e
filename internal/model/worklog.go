package model

import "time"

const WorkLogsKey = "work_logs"

type WorkLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tasks     []string  `json:"tasks"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
