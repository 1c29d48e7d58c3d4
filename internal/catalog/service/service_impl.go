package service

import (
	"context"
	"strings"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  catalogdomain.Repository
	Gate  quotadomain.Gate
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  catalogdomain.Repository
	gate  quotadomain.Gate
}

func NewService(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		gate:  p.Gate,
	}
}

type CreateCategoryInput struct {
	Name     string        `json:"name" binding:"required"`
	ParentID *snowflake.ID `json:"parent_id,omitempty"`
}

// CreateCategory checks the tenant's category quota before inserting.
func (s *Service) CreateCategory(ctx context.Context, tenantID snowflake.ID, in CreateCategoryInput) (*catalogdomain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	decision, err := s.gate.Check(ctx, tenantID, quotadomain.ResourceCategory)
	if err != nil {
		return nil, err
	}
	if err := quotadomain.ErrIfDenied(decision); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	category := &catalogdomain.Category{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		ParentID:  in.ParentID,
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertCategory(ctx, s.db, category); err != nil {
		return nil, err
	}

	s.log.Info("category created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("category_id", category.ID.String()),
	)
	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, tenantID, id snowflake.ID) (*catalogdomain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, catalogdomain.ErrCategoryNotFound
	}
	if category.TenantID != tenantID {
		return nil, catalogdomain.ErrForbidden
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context, tenantID snowflake.ID) ([]catalogdomain.Category, error) {
	return s.repo.ListCategories(ctx, s.db, tenantID)
}

type CreateProductInput struct {
	Name        string        `json:"name" binding:"required"`
	CategoryID  *snowflake.ID `json:"category_id,omitempty"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
}

// CreateProduct checks the tenant's product quota before inserting.
func (s *Service) CreateProduct(ctx context.Context, tenantID snowflake.ID, in CreateProductInput) (*catalogdomain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	decision, err := s.gate.Check(ctx, tenantID, quotadomain.ResourceProduct)
	if err != nil {
		return nil, err
	}
	if err := quotadomain.ErrIfDenied(decision); err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		if _, err := s.GetCategory(ctx, tenantID, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	product := &catalogdomain.Product{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		CategoryID:  in.CategoryID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertProduct(ctx, s.db, product); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
	)
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, tenantID, id snowflake.ID) (*catalogdomain.Product, error) {
	product, err := s.repo.FindProductByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalogdomain.ErrProductNotFound
	}
	if product.TenantID != tenantID {
		return nil, catalogdomain.ErrForbidden
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, tenantID snowflake.ID) ([]catalogdomain.Product, error) {
	return s.repo.ListProducts(ctx, s.db, tenantID)
}

type AddProductImageInput struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
}

// AddProductImage is gated on the plan's image upload flag rather than a
// numeric cap.
func (s *Service) AddProductImage(ctx context.Context, tenantID, productID snowflake.ID, in AddProductImageInput) (*catalogdomain.ProductImage, error) {
	if _, err := s.GetProduct(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	decision, err := s.gate.Check(ctx, tenantID, quotadomain.ResourceImageUpload)
	if err != nil {
		return nil, err
	}
	if err := quotadomain.ErrIfDenied(decision); err != nil {
		return nil, err
	}

	ext := ""
	if i := strings.LastIndex(in.FileName, "."); i >= 0 {
		ext = strings.ToLower(in.FileName[i:])
	}
	image := &catalogdomain.ProductImage{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		ProductID:   productID,
		ObjectKey:   "tenants/" + tenantID.String() + "/products/" + productID.String() + "/" + uuid.NewString() + ext,
		ContentType: in.ContentType,
		SizeBytes:   in.SizeBytes,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.InsertProductImage(ctx, s.db, image); err != nil {
		return nil, err
	}

	s.log.Info("product image recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", productID.String()),
		zap.String("object_key", image.ObjectKey),
	)
	return image, nil
}

func (s *Service) ListProductImages(ctx context.Context, tenantID, productID snowflake.ID) ([]catalogdomain.ProductImage, error) {
	if _, err := s.GetProduct(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	return s.repo.ListProductImages(ctx, s.db, tenantID, productID)
}
