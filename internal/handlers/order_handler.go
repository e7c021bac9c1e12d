package handlers

import (
	"log"

	"autosouq/internal/middleware"
	"autosouq/internal/models"
	"autosouq/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All order
// routes require authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	orders := router.Group("/orders", authRequired)
	orders.Get("/", h.HandleList)
	orders.Get("/:id", h.HandleGet)
	orders.Post("/", h.HandleCheckout)
	orders.Patch("/", h.HandleUpdateStatus)
}

// HandleList returns orders scoped by the caller's role.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.ListForUser(middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGet returns a single order visible to the caller.
func (h *OrderHandler) HandleGet(c *fiber.Ctx) error {
	order, err := h.service.GetByID(c.Params("id"), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCheckout creates one order per distinct seller in the cart.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	orders, err := h.service.Checkout(middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orders)
}

// StatusUpdateRequest is the order status patch payload.
type StatusUpdateRequest struct {
	OrderID string             `json:"orderId" validate:"required"`
	Status  models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateStatus sets an order's status; seller-of-the-order or admin.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.service.UpdateStatus(req.OrderID, middleware.UserID(c), middleware.UserRole(c), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
