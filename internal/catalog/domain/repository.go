package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCategory(ctx context.Context, db *gorm.DB, category *Category) error
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	ListCategories(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Category, error)

	InsertProduct(ctx context.Context, db *gorm.DB, product *Product) error
	FindProductByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	ListProducts(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Product, error)

	InsertProductImage(ctx context.Context, db *gorm.DB, image *ProductImage) error
	ListProductImages(ctx context.Context, db *gorm.DB, tenantID, productID snowflake.ID) ([]ProductImage, error)
}
