package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// ErrNotTaskOwner is returned when a user touches a task owned by someone
// else. Handlers translate it into a silent redirect, never an error page.
var ErrNotTaskOwner = errors.New("task does not belong to the current user")

// TaskInput carries the mutable task fields as parsed from the form.
type TaskInput struct {
	TaskName        string
	TaskDescription string
	IsUrgent        bool
	DueDate         time.Time
	CategoryID      uint
}

// TaskService handles task CRUD with ownership checks on mutation.
type TaskService interface {
	Add(ctx context.Context, ownerID uint, in TaskInput) (*model.Task, error)
	ListForOwner(ctx context.Context, ownerID uint) ([]model.Task, error)
	GetOwned(ctx context.Context, id, ownerID uint) (*model.Task, error)
	Update(ctx context.Context, id, ownerID uint, in TaskInput) error
	Delete(ctx context.Context, id, ownerID uint) error
}

type taskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

// Add inserts a task owned by the given user.
func (s *taskService) Add(ctx context.Context, ownerID uint, in TaskInput) (*model.Task, error) {
	task := &model.Task{
		TaskName:        in.TaskName,
		TaskDescription: in.TaskDescription,
		IsUrgent:        in.IsUrgent,
		DueDate:         in.DueDate,
		CategoryID:      in.CategoryID,
		TaskOwnerID:     &ownerID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListForOwner returns the user's tasks in insertion order.
func (s *taskService) ListForOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

// GetOwned loads a task and enforces the ownership check. Not-found errors
// from the repository pass through untouched.
func (s *taskService) GetOwned(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.TaskOwnerID == nil || *task.TaskOwnerID != ownerID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}

// Update overwrites all mutable fields of an owned task.
func (s *taskService) Update(ctx context.Context, id, ownerID uint, in TaskInput) error {
	task, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	task.TaskName = in.TaskName
	task.TaskDescription = in.TaskDescription
	task.IsUrgent = in.IsUrgent
	task.DueDate = in.DueDate
	task.CategoryID = in.CategoryID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes an owned task.
func (s *taskService) Delete(ctx context.Context, id, ownerID uint) error {
	task, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
