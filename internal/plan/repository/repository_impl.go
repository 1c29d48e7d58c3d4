package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() plandomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plan *plandomain.Plan) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscription_plans (
			id, code, name, max_categories, max_products, max_orders_per_month,
			can_upload_images, price, duration_days, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID,
		plan.Code,
		plan.Name,
		plan.MaxCategories,
		plan.MaxProducts,
		plan.MaxOrdersPerMonth,
		plan.CanUploadImages,
		plan.Price,
		plan.DurationDays,
		plan.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*plandomain.Plan, error) {
	var plan plandomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, max_categories, max_products, max_orders_per_month,
		 can_upload_images, price, duration_days, created_at
		 FROM subscription_plans WHERE id = ?`,
		id,
	).Scan(&plan).Error
	if err != nil {
		return nil, err
	}
	if plan.ID == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*plandomain.Plan, error) {
	var plan plandomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, max_categories, max_products, max_orders_per_month,
		 can_upload_images, price, duration_days, created_at
		 FROM subscription_plans WHERE code = ? LIMIT 1`,
		code,
	).Scan(&plan).Error
	if err != nil {
		return nil, err
	}
	if plan.ID == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]plandomain.Plan, error) {
	var plans []plandomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, max_categories, max_products, max_orders_per_month,
		 can_upload_images, price, duration_days, created_at
		 FROM subscription_plans ORDER BY price ASC, created_at ASC`,
	).Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
