package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hr-portal/internal/model"
	"hr-portal/internal/store"
)

type TaskService struct {
	store  *store.TaskStore
	now    Clock
	notify Notifier
}

func NewTaskService(st *store.TaskStore, now Clock, n Notifier) *TaskService {
	return &TaskService{store: st, now: now, notify: orNop(n)}
}

// NewTask is what a company user fills in when assigning work.
type NewTask struct {
	AssignedTo     string
	AssignedToName string
	AssignedBy     string
	AssignedByName string
	Title          string
	Description    string
	Priority       model.TaskPriority
	DueDate        string
}

func validTaskStatus(s model.TaskStatus) bool {
	switch s {
	case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted:
		return true
	}
	return false
}

func (s *TaskService) CreateTask(ctx context.Context, in NewTask) (*model.Task, error) {
	if in.AssignedTo == "" || strings.TrimSpace(in.Title) == "" {
		return nil, invalidf("assignee and title are required")
	}
	switch in.Priority {
	case model.TaskPriorityHigh, model.TaskPriorityMedium, model.TaskPriorityLow:
	default:
		return nil, invalidf("priority %q", in.Priority)
	}
	if in.DueDate != "" {
		if _, err := parseDate(in.DueDate); err != nil {
			return nil, err
		}
	}
	now := s.now()
	task := model.Task{
		ID:             newID("task", now),
		AssignedTo:     in.AssignedTo,
		AssignedToName: in.AssignedToName,
		AssignedBy:     in.AssignedBy,
		AssignedByName: in.AssignedByName,
		Title:          in.Title,
		Description:    in.Description,
		Priority:       in.Priority,
		Status:         model.TaskStatusPending,
		DueDate:        in.DueDate,
		CreatedAt:      now,
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	notify(ctx, s.notify, fmt.Sprintf("New task for %s: **%s** (priority %s, due %s) from %s",
		task.AssignedToName, task.Title, task.Priority, task.DueDate, task.AssignedByName))
	return &task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, notFound("task", id)
	}
	return task, nil
}

// UpdateTaskStatus sets any valid status; transitions are not ordered.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	if !validTaskStatus(status) {
		return nil, invalidf("task status %q", status)
	}
	task, err := s.store.Update(ctx, id, func(t *model.Task) error {
		t.Status = status
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if task == nil {
		return nil, notFound("task", id)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !removed {
		return notFound("task", id)
	}
	return nil
}

func (s *TaskService) UserTasks(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.store.GetByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user tasks: %w", err)
	}
	sortTasksNewestFirst(tasks)
	return tasks, nil
}

func (s *TaskService) AllTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	sortTasksNewestFirst(tasks)
	return tasks, nil
}

func sortTasksNewestFirst(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
}
