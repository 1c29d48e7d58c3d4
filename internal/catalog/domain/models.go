// Package domain contains the seller catalog models: categories, products and
// product images.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Category struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID  `gorm:"not null;index" json:"tenant_id"`
	ParentID  *snowflake.ID `gorm:"index" json:"parent_id,omitempty"`
	Name      string        `gorm:"type:text;not null" json:"name"`
	Slug      string        `gorm:"type:text;not null;index" json:"slug"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "categories" }

type Product struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID  `gorm:"not null;index" json:"tenant_id"`
	CategoryID  *snowflake.ID `gorm:"index" json:"category_id,omitempty"`
	Name        string        `gorm:"type:text;not null" json:"name"`
	Slug        string        `gorm:"type:text;not null;index" json:"slug"`
	Description string        `gorm:"type:text" json:"description"`
	Price       float64       `gorm:"not null;default:0" json:"price"`
	Archived    bool          `gorm:"not null;default:false" json:"archived"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

// ProductImage records an uploaded image by object key; blob storage itself
// lives elsewhere.
type ProductImage struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	ProductID   snowflake.ID `gorm:"not null;index" json:"product_id"`
	ObjectKey   string       `gorm:"type:text;not null" json:"object_key"`
	ContentType string       `gorm:"type:text" json:"content_type"`
	SizeBytes   int64        `gorm:"not null;default:0" json:"size_bytes"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ProductImage) TableName() string { return "product_images" }
