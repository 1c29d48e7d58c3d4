package repository

import (
	"context"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *catalogdomain.Category) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO categories (
			id, tenant_id, parent_id, name, slug, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.TenantID,
		category.ParentID,
		category.Name,
		category.Slug,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Category, error) {
	var category catalogdomain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, parent_id, name, slug, created_at, updated_at
		 FROM categories WHERE id = ?`,
		id,
	).Scan(&category).Error
	if err != nil {
		return nil, err
	}
	if category.ID == 0 {
		return nil, nil
	}
	return &category, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]catalogdomain.Category, error) {
	var categories []catalogdomain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, parent_id, name, slug, created_at, updated_at
		 FROM categories WHERE tenant_id = ? ORDER BY name ASC`,
		tenantID,
	).Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) InsertProduct(ctx context.Context, db *gorm.DB, product *catalogdomain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (
			id, tenant_id, category_id, name, slug, description, price, archived,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.TenantID,
		product.CategoryID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Archived,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindProductByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, category_id, name, slug, description, price, archived,
		 created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) ListProducts(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]catalogdomain.Product, error) {
	var products []catalogdomain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, category_id, name, slug, description, price, archived,
		 created_at, updated_at
		 FROM products WHERE tenant_id = ? ORDER BY created_at DESC`,
		tenantID,
	).Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) InsertProductImage(ctx context.Context, db *gorm.DB, image *catalogdomain.ProductImage) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO product_images (
			id, tenant_id, product_id, object_key, content_type, size_bytes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		image.ID,
		image.TenantID,
		image.ProductID,
		image.ObjectKey,
		image.ContentType,
		image.SizeBytes,
		image.CreatedAt,
	).Error
}

func (r *repo) ListProductImages(ctx context.Context, db *gorm.DB, tenantID, productID snowflake.ID) ([]catalogdomain.ProductImage, error) {
	var images []catalogdomain.ProductImage
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, product_id, object_key, content_type, size_bytes, created_at
		 FROM product_images WHERE tenant_id = ? AND product_id = ? ORDER BY created_at ASC`,
		tenantID,
		productID,
	).Scan(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
