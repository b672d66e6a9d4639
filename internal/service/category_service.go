package service

import (
	"context"
	"fmt"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// CategoryService handles category CRUD. Categories are shared between all
// users and carry no ownership check.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Add(ctx context.Context, name string) (*model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.ListByName(ctx)
}

func (s *categoryService) Add(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{CategoryName: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *categoryService) Rename(ctx context.Context, id uint, name string) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	category.CategoryName = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category after confirming it exists; the row's tasks go
// with it via the cascade constraint.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
