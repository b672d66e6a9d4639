package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmanager/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ownedTask(id, ownerID uint) *model.Task {
	return &model.Task{
		ID:          id,
		TaskName:    "Report",
		DueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CategoryID:  1,
		TaskOwnerID: &ownerID,
	}
}

func TestTaskService_Add(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	svc := NewTaskService(mockRepo)
	task, err := svc.Add(context.Background(), 7, TaskInput{
		TaskName:   "Report",
		DueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CategoryID: 3,
	})

	require.NoError(t, err)
	require.NotNil(t, task.TaskOwnerID)
	assert.Equal(t, uint(7), *task.TaskOwnerID)
	assert.False(t, task.IsUrgent)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_UpdateRejectsNonOwner(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(ownedTask(5, 1), nil)

	svc := NewTaskService(mockRepo)
	err := svc.Update(context.Background(), 5, 2, TaskInput{TaskName: "Hijacked"})

	assert.ErrorIs(t, err, ErrNotTaskOwner)
	// The row must not be touched.
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_UpdateOverwritesFields(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(ownedTask(5, 1), nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.TaskName == "Quarterly report" && task.IsUrgent && task.CategoryID == 9
	})).Return(nil)

	svc := NewTaskService(mockRepo)
	err := svc.Update(context.Background(), 5, 1, TaskInput{
		TaskName:   "Quarterly report",
		IsUrgent:   true,
		DueDate:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		CategoryID: 9,
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_DeleteRejectsNonOwner(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(ownedTask(5, 1), nil)

	svc := NewTaskService(mockRepo)
	err := svc.Delete(context.Background(), 5, 2)

	assert.ErrorIs(t, err, ErrNotTaskOwner)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_DeleteByOwner(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(ownedTask(5, 1), nil)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	svc := NewTaskService(mockRepo)
	require.NoError(t, svc.Delete(context.Background(), 5, 1))
	mockRepo.AssertExpectations(t)
}

func TestTaskService_GetOwnedNotFoundPassesThrough(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewTaskService(mockRepo)
	task, err := svc.GetOwned(context.Background(), 99, 1)

	assert.Nil(t, task)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	mockRepo.AssertExpectations(t)
}
