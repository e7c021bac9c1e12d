package services

import (
	"encoding/json"
	"fmt"
	"log"

	"autosouq/internal/models"
	"autosouq/internal/repositories"
)

// EventPublisher publishes domain events to the message broker. A nil
// publisher disables event publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles the checkout workflow and order lifecycle.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CheckoutItem is one cart line submitted at checkout.
type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutInput is the payload for creating orders from a cart.
type CheckoutInput struct {
	Items           []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string         `json:"shippingAddress" validate:"required,min=5"`
	Phone           string         `json:"phone" validate:"required,min=8"`
	Notes           string         `json:"notes,omitempty"`
}

// Checkout turns a validated cart into orders: one order per distinct
// seller, each with its own items and total. Unit prices are captured from
// the product's current price, never from the client. All products are
// verified to exist and be available before any order is created, so a
// rejected checkout creates nothing.
//
// Stock is informational and is not decremented here.
func (s *OrderService) Checkout(customerID string, input CheckoutInput) ([]models.Order, error) {
	ids := make([]string, 0, len(input.Items))
	seen := make(map[string]bool, len(input.Items))
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for checkout: %w", err)
	}
	if len(products) < len(ids) {
		return nil, ErrUnknownProduct
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, item := range input.Items {
		product := byID[item.ProductID]
		if !product.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
		}
	}

	// Partition the cart by the owning seller of each product, keeping
	// sellers in first-seen order.
	sellerIDs := make([]string, 0, len(input.Items))
	groups := make(map[string][]models.OrderItem)
	for _, item := range input.Items {
		product := byID[item.ProductID]
		if _, ok := groups[product.SellerID]; !ok {
			sellerIDs = append(sellerIDs, product.SellerID)
		}
		groups[product.SellerID] = append(groups[product.SellerID], models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	orders := make([]models.Order, 0, len(sellerIDs))
	for _, sellerID := range sellerIDs {
		items := groups[sellerID]
		var total float64
		for _, item := range items {
			total += item.Price * float64(item.Quantity)
		}

		order := models.Order{
			CustomerID:      customerID,
			SellerID:        sellerID,
			Status:          models.OrderPending,
			TotalAmount:     total,
			ShippingAddress: input.ShippingAddress,
			Phone:           input.Phone,
			Notes:           input.Notes,
			Items:           items,
		}
		if err := s.orderRepo.Create(&order); err != nil {
			return nil, fmt.Errorf("failed to create order for seller %s: %w", sellerID, err)
		}
		s.publishOrderCreated(&order)
		orders = append(orders, order)
	}
	return orders, nil
}

// publishOrderCreated emits an order.created event, best effort. A broker
// failure is logged and never fails the checkout.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"orderID":    order.ID,
		"customerID": order.CustomerID,
		"sellerID":   order.SellerID,
		"status":     order.Status,
		"total":      order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish("order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// ListForUser returns orders scoped by role: customers see their own,
// sellers see orders placed with them, admins see everything.
func (s *OrderService) ListForUser(userID string, role models.Role) ([]models.Order, error) {
	switch role {
	case models.RoleAdmin:
		return s.orderRepo.ListAll()
	case models.RoleSeller:
		return s.orderRepo.ListBySeller(userID)
	default:
		return s.orderRepo.ListByCustomer(userID)
	}
}

// GetByID returns an order visible to the given user: its customer, its
// seller or an admin.
func (s *OrderService) GetByID(id, userID string, role models.Role) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	if order.CustomerID != userID && order.SellerID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: not a party to this order", ErrForbidden)
	}
	return order, nil
}

// UpdateStatus sets an order's status. Only the order's seller or an admin
// may change it. Any known status may be set from any other.
func (s *OrderService) UpdateStatus(id, userID string, role models.Role, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	if order.SellerID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only the seller or an admin may update status", ErrForbidden)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
