package repositories

import "autosouq/internal/models"

// UserRepository defines the interface for user and seller-profile data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List() ([]models.User, error)
	Save(user *models.User) error
	Count() (int64, error)
	GetSellerProfile(userID string) (*models.SellerProfile, error)
	SaveSellerProfile(profile *models.SellerProfile) error
}
