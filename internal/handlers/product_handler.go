package handlers

import (
	"log"

	"autosouq/internal/middleware"
	"autosouq/internal/models"
	"autosouq/internal/repositories"
	"autosouq/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Reads
// are public with optional auth (so sellers can browse their own hidden
// stock); creation is seller only; update/delete owner or admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", optionalAuth, h.HandleList)
	products.Get("/:id", optionalAuth, h.HandleGet)
	products.Post("/", authRequired, middleware.RequireRole(models.RoleSeller), h.HandleCreate)
	products.Put("/:id", authRequired, h.HandleUpdate)
	products.Delete("/:id", authRequired, h.HandleDelete)
}

// HandleList searches the catalog with query-parameter filters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Search:       c.Query("search"),
		CategorySlug: c.Query("category"),
		CarMake:      c.Query("carMake"),
		SellerID:     c.Query("sellerId"),
		Sort:         c.Query("sort", "newest"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 12),
	}

	page, err := h.service.Search(filter, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Params("id"), middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// ProductRequest is the product create/update payload.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	NameAr        string   `json:"nameAr,omitempty"`
	Description   string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	DescriptionAr string   `json:"descriptionAr,omitempty"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	IsAvailable   *bool    `json:"isAvailable,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	CategoryID    string   `json:"categoryId" validate:"required"`
	CarMake       string   `json:"carMake,omitempty"`
	CarModel      string   `json:"carModel,omitempty"`
	CarYear       string   `json:"carYear,omitempty"`
	Images        []string `json:"images,omitempty"`
}

func (req *ProductRequest) toModel() models.Product {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	product := models.Product{
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Price:         req.Price,
		Stock:         req.Stock,
		IsAvailable:   available,
		Currency:      req.Currency,
		CategoryID:    req.CategoryID,
		CarMake:       req.CarMake,
		CarModel:      req.CarModel,
		CarYear:       req.CarYear,
	}
	if req.Images != nil {
		product.SetImageList(req.Images)
	}
	return product
}

// HandleCreate creates a product owned by the authenticated seller.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	product := req.toModel()
	if product.Images == "" {
		product.SetImageList(nil)
	}
	if err := h.service.Create(middleware.UserID(c), &product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate updates a product owned by the caller (or any, for admins).
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	updated := req.toModel()
	product, err := h.service.Update(c.Params("id"), &updated, middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDelete deletes a product owned by the caller (or any, for admins).
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id"), middleware.UserID(c), middleware.UserRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
