package models

import "time"

// Category groups products. Categories form a one-level tree: root categories
// may have children via ParentID.
type Category struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	NameAr    string     `json:"nameAr,omitempty" gorm:"type:varchar(100)"`
	Slug      string     `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Icon      string     `json:"icon,omitempty" gorm:"type:varchar(50)"`
	ParentID  *string    `json:"parentId,omitempty" gorm:"type:varchar(36);index"`
	Children  []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// ProductCount is filled by list queries, not persisted.
	ProductCount int64 `json:"productCount" gorm:"-"`
}
