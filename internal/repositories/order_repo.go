package repositories

import "autosouq/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByCustomer(customerID string) ([]models.Order, error)
	ListBySeller(sellerID string) ([]models.Order, error)
	ListAll() ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	Count() (int64, error)
	Revenue(statuses []models.OrderStatus) (float64, error)
}
