package handlers

import (
	"log"

	"autosouq/internal/middleware"
	"autosouq/internal/models"
	"autosouq/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the type-discriminated admin/profile endpoint.
// GET and PATCH both switch on a "type" discriminator: profile operations
// are available to any authenticated user for their own data, everything
// else is admin only.
type AdminHandler struct {
	adminService    *services.AdminService
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService, categoryService *services.CategoryService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	admin := router.Group("/admin", authRequired)
	admin.Get("/", h.HandleGet)
	admin.Patch("/", h.HandlePatch)
}

// HandleGet serves profile reads and the admin dashboard queries.
func (h *AdminHandler) HandleGet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	role := middleware.UserRole(c)

	switch queryType := c.Query("type"); queryType {
	case "user-profile":
		targetID := c.Query("userId", userID)
		user, err := h.adminService.GetProfile(targetID, userID, role)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)

	case "seller-profile":
		targetID := c.Query("userId", userID)
		profile, err := h.adminService.GetSellerView(targetID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profile)

	case "stats":
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		stats, err := h.adminService.Stats()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)

	case "users":
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		users, err := h.adminService.ListUsers()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(users)

	case "products":
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		products, err := h.adminService.ListProducts()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(products)

	case "orders":
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		orders, err := h.adminService.ListOrders()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(orders)

	case "categories":
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		categories, err := h.categoryService.ListAll()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(categories)

	default:
		return badRequest(c, "Invalid type")
	}
}

type adminPatchRequest struct {
	Type string `json:"type" validate:"required"`

	// user-profile
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`

	// seller-profile
	ShopName      string `json:"shopName,omitempty"`
	ShopNameAr    string `json:"shopNameAr,omitempty"`
	Description   string `json:"description,omitempty"`
	DescriptionAr string `json:"descriptionAr,omitempty"`
	Location      string `json:"location,omitempty"`

	// admin operations
	UserID     string      `json:"userId,omitempty"`
	IsActive   *bool       `json:"isActive,omitempty"`
	Role       models.Role `json:"role,omitempty"`
	IsVerified *bool       `json:"isVerified,omitempty"`
	CategoryID string      `json:"categoryId,omitempty"`
}

// HandlePatch serves profile updates and the admin mutations.
func (h *AdminHandler) HandlePatch(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	role := middleware.UserRole(c)

	var req adminPatchRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing admin request body: %v", err)
		return badRequest(c, "Invalid request body")
	}

	switch req.Type {
	case "user-profile":
		update := services.ProfileUpdate{
			Name:    req.Name,
			Phone:   req.Phone,
			City:    req.City,
			Address: req.Address,
		}
		if err := h.validate.Struct(update); err != nil {
			return respondValidationError(c, err)
		}
		user, err := h.adminService.UpdateProfile(userID, update)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)

	case "seller-profile":
		update := services.SellerProfileUpdate{
			ShopName:      req.ShopName,
			ShopNameAr:    req.ShopNameAr,
			Description:   req.Description,
			DescriptionAr: req.DescriptionAr,
			Location:      req.Location,
		}
		if err := h.validate.Struct(update); err != nil {
			return respondValidationError(c, err)
		}
		profile, err := h.adminService.UpdateSellerProfile(userID, update)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profile)
	}

	// Everything below is admin only.
	if role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
	}

	switch req.Type {
	case "toggle-user":
		if req.UserID == "" || req.IsActive == nil {
			return badRequest(c, "userId and isActive are required")
		}
		user, err := h.adminService.SetUserActive(req.UserID, *req.IsActive)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)

	case "change-role":
		if req.UserID == "" || req.Role == "" {
			return badRequest(c, "userId and role are required")
		}
		user, err := h.adminService.ChangeRole(req.UserID, req.Role)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)

	case "verify-seller":
		if req.UserID == "" || req.IsVerified == nil {
			return badRequest(c, "userId and isVerified are required")
		}
		profile, err := h.adminService.VerifySeller(req.UserID, *req.IsVerified)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profile)

	case "delete-category":
		if req.CategoryID == "" {
			return badRequest(c, "categoryId is required")
		}
		if err := h.categoryService.Delete(req.CategoryID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Category deleted"})

	default:
		return badRequest(c, "Invalid type")
	}
}
