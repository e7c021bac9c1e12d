package repositories

import "autosouq/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	ListRoots() ([]models.Category, error)
	List() ([]models.Category, error)
	Delete(id string) error
	CountProducts(categoryID string) (int64, error)
}
