package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"autosouq/internal/handlers"
	"autosouq/internal/middleware"
	"autosouq/internal/models"
	"autosouq/internal/repositories"
	"autosouq/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires the whole marketplace against an in-memory SQLite database.
// The DSN is keyed on the test name so each test gets its own database while
// the connection pool shares one.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SellerProfile{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Message{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	messageRepo := repositories.NewGORMMessageRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil) // no broker in tests
	messageService := services.NewMessageService(messageRepo, userRepo)
	adminService := services.NewAdminService(userRepo, productRepo, orderRepo)

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, authRequired)
	handlers.NewProductHandler(productService).RegisterRoutes(api, authRequired, optionalAuth)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, authRequired)
	handlers.NewMessageHandler(messageService).RegisterRoutes(api, authRequired)
	handlers.NewAdminHandler(adminService, categoryService).RegisterRoutes(api, authRequired)

	// Seed the admin account directly; admin accounts are never created
	// through the public registration endpoint.
	require.NoError(t, authService.Register(&models.User{
		Name:     "Admin",
		Email:    "admin@autosouq.dz",
		Password: "admin123",
		Role:     models.RoleAdmin,
	}))

	return app
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON performs a JSON request and decodes the response body into out.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var result struct {
		Token string `json:"token"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "password": password,
	}, &result)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func registerSeller(t *testing.T, app *fiber.App, name, email, shopName string) string {
	t.Helper()
	var result struct {
		UserID string `json:"userId"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
		"shopName": shopName,
	}, &result)
	require.Equal(t, http.StatusCreated, status)
	return result.UserID
}

func createCategory(t *testing.T, app *fiber.App, adminToken, name, slug string) string {
	t.Helper()
	var category models.Category
	status := doJSON(t, app, http.MethodPost, "/api/categories", adminToken, fiber.Map{
		"name": name, "slug": slug,
	}, &category)
	require.Equal(t, http.StatusCreated, status)
	return category.ID
}

func createProduct(t *testing.T, app *fiber.App, sellerToken, name, categoryID string, price float64, stock int) string {
	t.Helper()
	var product struct {
		ID string `json:"id"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/products", sellerToken, fiber.Map{
		"name":       name,
		"price":      price,
		"stock":      stock,
		"categoryId": categoryID,
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	return product.ID
}

func TestRegisterSellerAndCheckout(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")

	// Register seller "Shop A" and create a product priced 1000 with 5 in stock.
	registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	sellerToken := login(t, app, "shopa@example.com", "password123")
	categoryID := createCategory(t, app, adminToken, "Brakes", "brakes")
	productID := createProduct(t, app, sellerToken, "Brake Pads", categoryID, 1000, 5)

	// Customer orders 2 units.
	var customer struct {
		UserID string `json:"userId"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Karim", "email": "karim@example.com", "password": "password123",
	}, &customer)
	require.Equal(t, http.StatusCreated, status)
	customerToken := login(t, app, "karim@example.com", "password123")

	var orders []models.Order
	status = doJSON(t, app, http.MethodPost, "/api/orders", customerToken, fiber.Map{
		"items":           []fiber.Map{{"productId": productID, "quantity": 2}},
		"shippingAddress": "12 Rue Didouche Mourad, Algiers",
		"phone":           "0550123456",
	}, &orders)
	require.Equal(t, http.StatusCreated, status)

	// Exactly one order, total 2000, one item with captured price 1000.
	require.Len(t, orders, 1)
	assert.Equal(t, 2000.0, orders[0].TotalAmount)
	assert.Equal(t, models.OrderPending, orders[0].Status)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, productID, orders[0].Items[0].ProductID)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
	assert.Equal(t, 1000.0, orders[0].Items[0].Price)

	// The seller sees the order and can move it forward.
	var sellerOrders []models.Order
	status = doJSON(t, app, http.MethodGet, "/api/orders", sellerToken, nil, &sellerOrders)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, sellerOrders, 1)

	var updated models.Order
	status = doJSON(t, app, http.MethodPatch, "/api/orders", sellerToken, fiber.Map{
		"orderId": orders[0].ID, "status": "CONFIRMED",
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderConfirmed, updated.Status)

	// The customer may not change the status.
	status = doJSON(t, app, http.MethodPatch, "/api/orders", customerToken, fiber.Map{
		"orderId": orders[0].ID, "status": "DELIVERED",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCheckoutSplitsAcrossSellers(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")
	categoryID := createCategory(t, app, adminToken, "Filters", "filters")

	registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	registerSeller(t, app, "Omar", "shopb@example.com", "Shop B")
	tokenA := login(t, app, "shopa@example.com", "password123")
	tokenB := login(t, app, "shopb@example.com", "password123")

	productA := createProduct(t, app, tokenA, "Oil Filter", categoryID, 500, 10)
	productB := createProduct(t, app, tokenB, "Air Filter", categoryID, 300, 10)

	doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Karim", "email": "karim@example.com", "password": "password123",
	}, nil)
	customerToken := login(t, app, "karim@example.com", "password123")

	var orders []models.Order
	status := doJSON(t, app, http.MethodPost, "/api/orders", customerToken, fiber.Map{
		"items": []fiber.Map{
			{"productId": productA, "quantity": 1},
			{"productId": productB, "quantity": 2},
		},
		"shippingAddress": "12 Rue Didouche Mourad, Algiers",
		"phone":           "0550123456",
	}, &orders)
	require.Equal(t, http.StatusCreated, status)

	// One order per seller, each with its own total.
	require.Len(t, orders, 2)
	totals := map[string]float64{}
	for _, order := range orders {
		totals[order.SellerID] = order.TotalAmount
	}
	assert.Len(t, totals, 2)
	assert.Contains(t, []float64{500, 600}, orders[0].TotalAmount)
	assert.Contains(t, []float64{500, 600}, orders[1].TotalAmount)
	assert.NotEqual(t, orders[0].TotalAmount, orders[1].TotalAmount)
}

func TestCheckoutRejectsUnknownAndUnavailable(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")
	categoryID := createCategory(t, app, adminToken, "Brakes", "brakes")

	registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	sellerToken := login(t, app, "shopa@example.com", "password123")
	productID := createProduct(t, app, sellerToken, "Brake Pads", categoryID, 1000, 5)

	doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Karim", "email": "karim@example.com", "password": "password123",
	}, nil)
	customerToken := login(t, app, "karim@example.com", "password123")

	// Unknown product id fails the whole checkout.
	status := doJSON(t, app, http.MethodPost, "/api/orders", customerToken, fiber.Map{
		"items": []fiber.Map{
			{"productId": productID, "quantity": 1},
			{"productId": "does-not-exist", "quantity": 1},
		},
		"shippingAddress": "12 Rue Didouche Mourad, Algiers",
		"phone":           "0550123456",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// No orders were created.
	var orders []models.Order
	status = doJSON(t, app, http.MethodGet, "/api/orders", customerToken, nil, &orders)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, orders)

	// Hide the product, then a checkout referencing it fails too.
	var hidden models.Product
	status = doJSON(t, app, http.MethodPut, "/api/products/"+productID, sellerToken, fiber.Map{
		"name":        "Brake Pads",
		"price":       1000,
		"stock":       5,
		"categoryId":  categoryID,
		"isAvailable": false,
	}, &hidden)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodPost, "/api/orders", customerToken, fiber.Map{
		"items":           []fiber.Map{{"productId": productID, "quantity": 1}},
		"shippingAddress": "12 Rue Didouche Mourad, Algiers",
		"phone":           "0550123456",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDuplicateCategorySlugRejected(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")

	createCategory(t, app, adminToken, "Brakes", "brakes")
	status := doJSON(t, app, http.MethodPost, "/api/categories", adminToken, fiber.Map{
		"name": "Brake Parts", "slug": "brakes",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Still exactly one category with that slug.
	var categories []models.Category
	status = doJSON(t, app, http.MethodGet, "/api/categories", "", nil, &categories)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, categories, 1)
}

func TestNonOwnerCannotEditProduct(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")
	categoryID := createCategory(t, app, adminToken, "Brakes", "brakes")

	registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	registerSeller(t, app, "Omar", "shopb@example.com", "Shop B")
	tokenA := login(t, app, "shopa@example.com", "password123")
	tokenB := login(t, app, "shopb@example.com", "password123")

	productID := createProduct(t, app, tokenA, "Brake Pads", categoryID, 1000, 5)

	status := doJSON(t, app, http.MethodPut, "/api/products/"+productID, tokenB, fiber.Map{
		"name":       "Hijacked",
		"price":      1,
		"stock":      0,
		"categoryId": categoryID,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The product is untouched.
	var product models.Product
	status = doJSON(t, app, http.MethodGet, "/api/products/"+productID, "", nil, &product)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Brake Pads", product.Name)
	assert.Equal(t, 1000.0, product.Price)
}

func TestProductSearchMatchesTerm(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")
	categoryID := createCategory(t, app, adminToken, "Engine Parts", "engine-parts")

	registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	sellerToken := login(t, app, "shopa@example.com", "password123")

	createProduct(t, app, sellerToken, "Brake Pads Toyota", categoryID, 1000, 5)
	createProduct(t, app, sellerToken, "Oil Filter", categoryID, 500, 5)

	var page struct {
		Products []models.Product `json:"products"`
		Total    int64            `json:"total"`
	}
	status := doJSON(t, app, http.MethodGet, "/api/products?search=toyota", "", nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Brake Pads Toyota", page.Products[0].Name)
}

func TestMessageThreadMarksRead(t *testing.T) {
	app := setupApp(t)

	sellerID := registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	sellerToken := login(t, app, "shopa@example.com", "password123")

	var customer struct {
		UserID string `json:"userId"`
	}
	doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Karim", "email": "karim@example.com", "password": "password123",
	}, &customer)
	customerToken := login(t, app, "karim@example.com", "password123")

	status := doJSON(t, app, http.MethodPost, "/api/messages", customerToken, fiber.Map{
		"receiverId": sellerID,
		"content":    "Is the part still available?",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	// The seller's conversation list shows one unread message.
	var conversations []models.Conversation
	status = doJSON(t, app, http.MethodGet, "/api/messages", sellerToken, nil, &conversations)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, conversations, 1)
	assert.Equal(t, int64(1), conversations[0].UnreadCount)

	// Opening the thread marks it read.
	var thread []models.Message
	status = doJSON(t, app, http.MethodGet, "/api/messages?with="+customer.UserID, sellerToken, nil, &thread)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, thread, 1)

	status = doJSON(t, app, http.MethodGet, "/api/messages", sellerToken, nil, &conversations)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, conversations, 1)
	assert.Equal(t, int64(0), conversations[0].UnreadCount)

	// Re-reading the thread is idempotent.
	status = doJSON(t, app, http.MethodGet, "/api/messages?with="+customer.UserID, sellerToken, nil, &thread)
	require.Equal(t, http.StatusOK, status)
	status = doJSON(t, app, http.MethodGet, "/api/messages", sellerToken, nil, &conversations)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), conversations[0].UnreadCount)
}

func TestAdminEndpoints(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin@autosouq.dz", "admin123")

	sellerID := registerSeller(t, app, "Ali", "shopa@example.com", "Shop A")
	sellerToken := login(t, app, "shopa@example.com", "password123")

	// Stats are admin only.
	status := doJSON(t, app, http.MethodGet, "/api/admin?type=stats", sellerToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var stats services.Stats
	status = doJSON(t, app, http.MethodGet, "/api/admin?type=stats", adminToken, nil, &stats)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), stats.Users) // admin + seller

	// Verify the seller.
	var profile models.SellerProfile
	status = doJSON(t, app, http.MethodPatch, "/api/admin", adminToken, fiber.Map{
		"type": "verify-seller", "userId": sellerID, "isVerified": true,
	}, &profile)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, profile.IsVerified)

	// Deactivate the seller; they can no longer log in.
	status = doJSON(t, app, http.MethodPatch, "/api/admin", adminToken, fiber.Map{
		"type": "toggle-user", "userId": sellerID, "isActive": false,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "shopa@example.com", "password": "password123",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Category deletion is blocked while products reference the category.
	categoryID := createCategory(t, app, adminToken, "Brakes", "brakes")
	status = doJSON(t, app, http.MethodPatch, "/api/admin", adminToken, fiber.Map{
		"type": "toggle-user", "userId": sellerID, "isActive": true,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	sellerToken = login(t, app, "shopa@example.com", "password123")
	createProduct(t, app, sellerToken, "Brake Pads", categoryID, 1000, 5)

	status = doJSON(t, app, http.MethodPatch, "/api/admin", adminToken, fiber.Map{
		"type": "delete-category", "categoryId": categoryID,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
