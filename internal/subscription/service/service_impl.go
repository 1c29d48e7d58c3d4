package service

import (
	"context"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     subscriptiondomain.Repository
	PlanRepo plandomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     subscriptiondomain.Repository
	planRepo plandomain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("subscription.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		planRepo: p.PlanRepo,
	}
}

// CurrentView is the subscription payload with its resolved plan.
type CurrentView struct {
	Subscription *subscriptiondomain.Subscription `json:"subscription"`
	Plan         *plandomain.Plan                 `json:"plan,omitempty"`
}

// Current returns the tenant's most recent subscription with its plan, or a
// not-found error when the tenant never subscribed.
func (s *Service) Current(ctx context.Context, tenantID snowflake.ID) (*CurrentView, error) {
	subscription, err := s.repo.FindCurrentByTenant(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, subscriptiondomain.ErrSubscriptionNotFound
	}

	plan, err := s.planRepo.FindByID(ctx, s.db, subscription.PlanID)
	if err != nil {
		return nil, err
	}
	return &CurrentView{Subscription: subscription, Plan: plan}, nil
}

// Renew creates a new ACTIVE row for the tenant on the given plan. The old
// row is left untouched; the lifecycle engine keeps walking it to EXPIRED.
func (s *Service) Renew(ctx context.Context, tenantID snowflake.ID, planCode string, startDate time.Time) (*subscriptiondomain.Subscription, error) {
	plan, err := s.planRepo.FindByCode(ctx, s.db, planCode)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, subscriptiondomain.ErrPlanNotFound
	}

	now := s.clock.Now()
	if startDate.IsZero() {
		startDate = now
	}
	endDate := startDate.AddDate(0, 0, plan.DurationDays)
	if !endDate.After(startDate) {
		return nil, subscriptiondomain.ErrInvalidTerm
	}

	subscription := &subscriptiondomain.Subscription{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		PlanID:    plan.ID,
		Status:    subscriptiondomain.SubscriptionStatusActive,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, subscription); err != nil {
		return nil, err
	}

	s.log.Info("subscription renewed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("plan_code", plan.Code),
		zap.Time("end_date", endDate),
	)
	return subscription, nil
}
