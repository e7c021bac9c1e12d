package repositories

import (
	"fmt"

	"autosouq/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database. A nested SellerProfile, if
// present, is created in the same insert.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.SellerProfile != nil {
		if user.SellerProfile.ID == "" {
			user.SellerProfile.ID = uuid.New().String()
		}
		user.SellerProfile.UserID = user.ID
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("SellerProfile").First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("SellerProfile").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// List retrieves all users, newest first.
func (r *GORMUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("SellerProfile").Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Save persists changes to an existing user.
func (r *GORMUserRepository) Save(user *models.User) error {
	res := r.db.Omit("SellerProfile").Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to save user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for update", user.ID)
	}
	return nil
}

// Count returns the total number of users.
func (r *GORMUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetSellerProfile retrieves the seller profile owned by the given user.
func (r *GORMUserRepository) GetSellerProfile(userID string) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("seller profile for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get seller profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// SaveSellerProfile persists changes to an existing seller profile.
func (r *GORMUserRepository) SaveSellerProfile(profile *models.SellerProfile) error {
	res := r.db.Save(profile)
	if res.Error != nil {
		return fmt.Errorf("failed to save seller profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("seller profile %s not found for update", profile.ID)
	}
	return nil
}
