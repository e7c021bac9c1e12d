package models

import "time"

// Role determines what a user is allowed to do across the marketplace.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSeller   Role = "SELLER"
	RoleCustomer Role = "CUSTOMER"
)

// User represents an account in the marketplace. Sellers additionally own
// a SellerProfile carrying their shop metadata.
type User struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string         `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email         string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password      string         `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Phone         string         `json:"phone,omitempty" gorm:"type:varchar(32)"`
	City          string         `json:"city,omitempty" gorm:"type:varchar(100)"`
	Address       string         `json:"address,omitempty" gorm:"type:varchar(255)"`
	Role          Role           `json:"role" gorm:"type:varchar(16);default:CUSTOMER"`
	IsActive      bool           `json:"isActive" gorm:"default:true"`
	SellerProfile *SellerProfile `json:"sellerProfile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// SellerProfile is the 1:1 shop metadata for users with the SELLER role.
type SellerProfile struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	ShopName      string    `json:"shopName" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	ShopNameAr    string    `json:"shopNameAr,omitempty" gorm:"type:varchar(100)"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	DescriptionAr string    `json:"descriptionAr,omitempty" gorm:"type:text"`
	Location      string    `json:"location,omitempty" gorm:"type:varchar(255)"`
	IsVerified    bool      `json:"isVerified" gorm:"default:false"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
