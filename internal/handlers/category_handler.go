package handlers

import (
	"log"

	"autosouq/internal/middleware"
	"autosouq/internal/models"
	"autosouq/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app. Listing
// is public; creation is admin only.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleList)
	categories.Post("/", authRequired, middleware.RequireRole(models.RoleAdmin), h.HandleCreate)
}

// HandleList returns the root categories with children and product counts.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.ListTree()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// CategoryRequest is the category creation payload.
type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	NameAr   string  `json:"nameAr,omitempty"`
	Slug     string  `json:"slug" validate:"required,min=2,max=100"`
	Icon     string  `json:"icon,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category := models.Category{
		Name:     req.Name,
		NameAr:   req.NameAr,
		Slug:     req.Slug,
		Icon:     req.Icon,
		ParentID: req.ParentID,
	}
	if err := h.service.Create(&category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
