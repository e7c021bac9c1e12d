package services

import (
	"fmt"

	"autosouq/internal/models"
	"autosouq/internal/repositories"
)

// ProductService handles business logic related to product listings.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
	}
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products    []models.Product `json:"products"`
	Total       int64            `json:"total"`
	Pages       int64            `json:"pages"`
	CurrentPage int              `json:"currentPage"`
}

// Search lists products for the given filter. Unless the viewer is the
// seller being filtered on (or an admin), only available products are
// returned.
func (s *ProductService) Search(filter repositories.ProductFilter, viewerID string, viewerRole models.Role) (*ProductPage, error) {
	ownListing := filter.SellerID != "" &&
		(filter.SellerID == viewerID || viewerRole == models.RoleAdmin)
	filter.AvailableOnly = !ownListing

	if filter.Limit <= 0 {
		filter.Limit = 12
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}
	return &ProductPage{
		Products:    products,
		Total:       total,
		Pages:       pages,
		CurrentPage: filter.Page,
	}, nil
}

// GetByID returns a product. Unavailable products are hidden from everyone
// except their owning seller and admins.
func (s *ProductService) GetByID(id, viewerID string, viewerRole models.Role) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if !product.IsAvailable && product.SellerID != viewerID && viewerRole != models.RoleAdmin {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return product, nil
}

// Create creates a new product owned by the given seller. The referenced
// category must exist.
func (s *ProductService) Create(sellerID string, product *models.Product) error {
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return fmt.Errorf("%w: category %s", ErrNotFound, product.CategoryID)
	}
	product.SellerID = sellerID
	return s.repo.Create(product)
}

// Update applies changes to a product. Only the owning seller or an admin
// may update; anyone else gets ErrForbidden and nothing is mutated.
func (s *ProductService) Update(id string, updated *models.Product, viewerID string, viewerRole models.Role) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if product.SellerID != viewerID && viewerRole != models.RoleAdmin {
		return nil, fmt.Errorf("%w: not the product owner", ErrForbidden)
	}
	if updated.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(updated.CategoryID); err != nil {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, updated.CategoryID)
		}
	}

	product.Name = updated.Name
	product.NameAr = updated.NameAr
	product.Description = updated.Description
	product.DescriptionAr = updated.DescriptionAr
	product.Price = updated.Price
	product.Stock = updated.Stock
	product.IsAvailable = updated.IsAvailable
	product.CategoryID = updated.CategoryID
	product.CarMake = updated.CarMake
	product.CarModel = updated.CarModel
	product.CarYear = updated.CarYear
	if updated.Images != "" {
		product.Images = updated.Images
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product. Only the owning seller or an admin may delete.
func (s *ProductService) Delete(id, viewerID string, viewerRole models.Role) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if product.SellerID != viewerID && viewerRole != models.RoleAdmin {
		return fmt.Errorf("%w: not the product owner", ErrForbidden)
	}
	return s.repo.Delete(id)
}
