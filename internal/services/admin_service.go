package services

import (
	"fmt"

	"autosouq/internal/models"
	"autosouq/internal/repositories"
)

// AdminService handles administrative oversight and profile management.
type AdminService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Stats summarizes the marketplace for the admin dashboard. Revenue counts
// orders that were at least confirmed.
type Stats struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// Stats computes marketplace-wide totals.
func (s *AdminService) Stats() (*Stats, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.Revenue([]models.OrderStatus{
		models.OrderConfirmed, models.OrderShipped, models.OrderDelivered,
	})
	if err != nil {
		return nil, err
	}
	return &Stats{Users: users, Products: products, Orders: orders, Revenue: revenue}, nil
}

// ListUsers returns every account, newest first, passwords stripped.
func (s *AdminService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// ListProducts returns every product, including unavailable ones.
func (s *AdminService) ListProducts() ([]models.Product, error) {
	products, _, err := s.productRepo.List(repositories.ProductFilter{})
	return products, err
}

// ListOrders returns every order, newest first.
func (s *AdminService) ListOrders() ([]models.Order, error) {
	return s.orderRepo.ListAll()
}

// GetProfile returns a user's profile. Non-admins may only read their own.
func (s *AdminService) GetProfile(targetID, viewerID string, viewerRole models.Role) (*models.User, error) {
	if targetID != viewerID && viewerRole != models.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot read another user's profile", ErrForbidden)
	}
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, targetID)
	}
	user.Password = ""
	return user, nil
}

// GetSellerView returns a user with their shop profile. Shop metadata is
// public storefront information, so any authenticated user may read it.
func (s *AdminService) GetSellerView(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	user.Password = ""
	return user, nil
}

// ProfileUpdate carries the self-editable contact fields of a user.
type ProfileUpdate struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateProfile applies contact-field changes to the user's own profile.
func (s *AdminService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	user.Name = update.Name
	user.Phone = update.Phone
	user.City = update.City
	user.Address = update.Address
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// SellerProfileUpdate carries the self-editable shop fields of a seller.
type SellerProfileUpdate struct {
	ShopName      string `json:"shopName" validate:"required,min=2,max=100"`
	ShopNameAr    string `json:"shopNameAr,omitempty"`
	Description   string `json:"description,omitempty"`
	DescriptionAr string `json:"descriptionAr,omitempty"`
	Location      string `json:"location,omitempty"`
}

// UpdateSellerProfile applies shop-field changes to the seller's own profile.
func (s *AdminService) UpdateSellerProfile(userID string, update SellerProfileUpdate) (*models.SellerProfile, error) {
	profile, err := s.userRepo.GetSellerProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: seller profile for user %s", ErrNotFound, userID)
	}
	profile.ShopName = update.ShopName
	profile.ShopNameAr = update.ShopNameAr
	profile.Description = update.Description
	profile.DescriptionAr = update.DescriptionAr
	profile.Location = update.Location
	if err := s.userRepo.SaveSellerProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetUserActive toggles an account's active flag.
func (s *AdminService) SetUserActive(userID string, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	user.IsActive = active
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// ChangeRole changes an account's role.
func (s *AdminService) ChangeRole(userID string, role models.Role) (*models.User, error) {
	switch role {
	case models.RoleAdmin, models.RoleSeller, models.RoleCustomer:
	default:
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	user.Role = role
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// VerifySeller sets the verified flag on a seller's profile.
func (s *AdminService) VerifySeller(userID string, verified bool) (*models.SellerProfile, error) {
	profile, err := s.userRepo.GetSellerProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: seller profile for user %s", ErrNotFound, userID)
	}
	profile.IsVerified = verified
	if err := s.userRepo.SaveSellerProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
