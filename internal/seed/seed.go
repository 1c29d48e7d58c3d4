// Package seed installs the default plan catalog on startup so a fresh
// install has plans to subscribe to.
package seed

import (
	"context"
	"errors"
	"time"

	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// EnsureDefaultPlans inserts the built-in plans when their codes are absent.
// Existing rows are left untouched so operators can tune limits in place.
func EnsureDefaultPlans(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	defaults := []plandomain.Plan{
		{
			Code:              "free",
			Name:              "Free",
			MaxCategories:     3,
			MaxProducts:       10,
			MaxOrdersPerMonth: 20,
			CanUploadImages:   false,
			Price:             0,
			DurationDays:      30,
		},
		{
			Code:              "basic",
			Name:              "Basic",
			MaxCategories:     10,
			MaxProducts:       100,
			MaxOrdersPerMonth: 500,
			CanUploadImages:   true,
			Price:             9.99,
			DurationDays:      30,
		},
		{
			Code:              "premium",
			Name:              "Premium",
			MaxCategories:     plandomain.UnlimitedSentinel,
			MaxProducts:       plandomain.UnlimitedSentinel,
			MaxOrdersPerMonth: plandomain.UnlimitedSentinel,
			CanUploadImages:   true,
			Price:             29.99,
			DurationDays:      30,
		},
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, plan := range defaults {
			var existing plandomain.Plan
			err := tx.WithContext(ctx).Where("code = ?", plan.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			plan.ID = node.Generate()
			plan.CreatedAt = time.Now().UTC()
			if err := tx.WithContext(ctx).Create(&plan).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
