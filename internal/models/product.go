package models

import (
	"encoding/json"
	"time"
)

// Product is a single auto-part listing owned by a seller.
//
// Images is stored as a JSON-encoded array of URL strings in a text column;
// use ImageList/SetImageList instead of touching the raw field.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	NameAr        string    `json:"nameAr,omitempty" gorm:"type:varchar(255)"`
	Description   string    `json:"description,omitempty" gorm:"type:text" validate:"omitempty,max=2000"`
	DescriptionAr string    `json:"descriptionAr,omitempty" gorm:"type:text"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	Stock         int       `json:"stock" validate:"gte=0"`
	IsAvailable   bool      `json:"isAvailable" gorm:"default:true"`
	Currency      string    `json:"currency" gorm:"type:varchar(8);default:DZD"`
	Images        string    `json:"-" gorm:"type:text"`
	CarMake       string    `json:"carMake,omitempty" gorm:"type:varchar(100)"`
	CarModel      string    `json:"carModel,omitempty" gorm:"type:varchar(100)"`
	CarYear       string    `json:"carYear,omitempty" gorm:"type:varchar(16)"`
	CategoryID    string    `json:"categoryId" gorm:"type:varchar(36);index" validate:"required"`
	Category      *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SellerID      string    `json:"sellerId" gorm:"type:varchar(36);index"`
	Seller        *User     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ImageList decodes the stored image URLs. A malformed or empty column
// yields an empty slice rather than an error.
func (p *Product) ImageList() []string {
	if p.Images == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.Images), &urls); err != nil {
		return []string{}
	}
	return urls
}

// SetImageList encodes the given URLs into the Images column.
func (p *Product) SetImageList(urls []string) {
	if urls == nil {
		urls = []string{}
	}
	encoded, err := json.Marshal(urls)
	if err != nil {
		p.Images = "[]"
		return
	}
	p.Images = string(encoded)
}

// MarshalJSON exposes images as a decoded array so API clients never see
// the raw JSON-in-a-string column.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Images []string `json:"images"`
	}{
		alias:  alias(p),
		Images: p.ImageList(),
	})
}
