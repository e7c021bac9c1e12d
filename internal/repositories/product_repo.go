package repositories

import "autosouq/internal/models"

// ProductFilter narrows and orders a product listing. Zero values mean
// "no filter". Page is 1-based; Limit caps the page size.
type ProductFilter struct {
	Search        string
	CategorySlug  string
	CarMake       string
	SellerID      string
	AvailableOnly bool
	Sort          string // "newest", "price_asc" or "price_desc"
	Page          int
	Limit         int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Count() (int64, error)
}
