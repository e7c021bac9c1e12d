package services

import (
	"fmt"

	"autosouq/internal/models"
	"autosouq/internal/repositories"
)

// CategoryService handles business logic for the category tree.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// ListTree returns the root categories with their children, each annotated
// with its product count.
func (s *CategoryService) ListTree() ([]models.Category, error) {
	roots, err := s.repo.ListRoots()
	if err != nil {
		return nil, err
	}
	for i := range roots {
		count, err := s.repo.CountProducts(roots[i].ID)
		if err != nil {
			return nil, err
		}
		roots[i].ProductCount = count
		for j := range roots[i].Children {
			childCount, err := s.repo.CountProducts(roots[i].Children[j].ID)
			if err != nil {
				return nil, err
			}
			roots[i].Children[j].ProductCount = childCount
		}
	}
	return roots, nil
}

// ListAll returns every category annotated with its product count.
func (s *CategoryService) ListAll() ([]models.Category, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		count, err := s.repo.CountProducts(categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].ProductCount = count
	}
	return categories, nil
}

// Create creates a new category, rejecting duplicate slugs.
func (s *CategoryService) Create(category *models.Category) error {
	if existing, err := s.repo.GetBySlug(category.Slug); err == nil && existing != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateSlug, category.Slug)
	}
	return s.repo.Create(category)
}

// Delete removes a category. A category that still has products attached
// is rejected so no product is ever orphaned.
func (s *CategoryService) Delete(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d products attached", ErrCategoryNotEmpty, count)
	}
	return s.repo.Delete(id)
}
