package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type WorkLogService struct {
	store *store.WorkLogStore
	now   Clock
}

func NewWorkLogService(st *store.WorkLogStore, now Clock) *WorkLogService {
	return &WorkLogService{store: st, now: now}
}

func cleanTasks(tasks []string) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CreateWorkLog files a new log dated today. Several logs per day are allowed.
func (s *WorkLogService) CreateWorkLog(ctx context.Context, userID, userName, title, content string, tasks []string) (*model.WorkLog, error) {
	if userID == "" || strings.TrimSpace(title) == "" {
		return nil, invalidf("user id and title are required")
	}
	now := s.now()
	wl := model.WorkLog{
		ID:        newID("log", now),
		UserID:    userID,
		UserName:  userName,
		Date:      now.Format(time.DateOnly),
		Title:     title,
		Content:   content,
		Tasks:     cleanTasks(tasks),
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, wl); err != nil {
		return nil, fmt.Errorf("create work log: %w", err)
	}
	return &wl, nil
}

func (s *WorkLogService) GetWorkLog(ctx context.Context, id string) (*model.WorkLog, error) {
	wl, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get work log: %w", err)
	}
	if wl == nil {
		return nil, notFound("work log", id)
	}
	return wl, nil
}

// UpdateWorkLog rewrites the editable fields and leaves feedback alone.
func (s *WorkLogService) UpdateWorkLog(ctx context.Context, id, title, content string, tasks []string) (*model.WorkLog, error) {
	if strings.TrimSpace(title) == "" {
		return nil, invalidf("title is required")
	}
	wl, err := s.store.Update(ctx, id, func(l *model.WorkLog) error {
		l.Title = title
		l.Content = content
		l.Tasks = cleanTasks(tasks)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update work log: %w", err)
	}
	if wl == nil {
		return nil, notFound("work log", id)
	}
	return wl, nil
}

// AddFeedback replaces any previous feedback.
func (s *WorkLogService) AddFeedback(ctx context.Context, id, feedback string) (*model.WorkLog, error) {
	wl, err := s.store.Update(ctx, id, func(l *model.WorkLog) error {
		l.Feedback = feedback
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add feedback: %w", err)
	}
	if wl == nil {
		return nil, notFound("work log", id)
	}
	return wl, nil
}

func (s *WorkLogService) UserWorkLogs(ctx context.Context, userID string) ([]model.WorkLog, error) {
	logs, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user work logs: %w", err)
	}
	sortLogsNewestFirst(logs)
	return logs, nil
}

func (s *WorkLogService) AllWorkLogs(ctx context.Context) ([]model.WorkLog, error) {
	logs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get work logs: %w", err)
	}
	sortLogsNewestFirst(logs)
	return logs, nil
}

func sortLogsNewestFirst(logs []model.WorkLog) {
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].CreatedAt.After(logs[j].CreatedAt) })
}
