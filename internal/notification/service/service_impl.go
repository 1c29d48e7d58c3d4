package service

import (
	"context"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	notificationdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/domain"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/metrics"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    notificationdomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    notificationdomain.Repository
	metrics *metrics.Metrics
}

func NewService(p Params) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("notification.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

type EmitInput struct {
	TenantID snowflake.ID
	Type     notificationdomain.NotificationType
	Title    string
	Message  string
	Metadata map[string]any
}

// Emit writes a notification row using the given db handle, which may be a
// transaction so the notification commits with the state change it announces.
func (s *Service) Emit(ctx context.Context, db *gorm.DB, in EmitInput) (*notificationdomain.Notification, error) {
	if db == nil {
		db = s.db
	}
	notification := &notificationdomain.Notification{
		ID:        s.genID.Generate(),
		TenantID:  in.TenantID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Metadata:  in.Metadata,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, db, notification); err != nil {
		return nil, err
	}
	s.metrics.RecordNotification(string(in.Type))
	return notification, nil
}

// HasRecentExpiryWarning reports whether an expiring-soon warning for the
// same subscription and day count already went out within the window. The
// metadata match happens in Go so the query stays portable across JSON
// column representations.
func (s *Service) HasRecentExpiryWarning(ctx context.Context, db *gorm.DB, tenantID, subscriptionID snowflake.ID, daysRemaining int, since time.Time) (bool, error) {
	if db == nil {
		db = s.db
	}
	candidates, err := s.repo.FindRecentByType(ctx, db, tenantID, notificationdomain.TypeSubscriptionExpiring, since)
	if err != nil {
		return false, err
	}
	for i := range candidates {
		days, ok := candidates[i].MetadataInt("days_remaining")
		if !ok || days != int64(daysRemaining) {
			continue
		}
		subID, ok := candidates[i].MetadataInt("subscription_id")
		if ok && subID != int64(subscriptionID) {
			continue
		}
		return true, nil
	}
	return false, nil
}

// List returns one page of the tenant's feed, newest first, plus the cursor
// for the next page. beforeID of zero starts from the top.
func (s *Service) List(ctx context.Context, tenantID snowflake.ID, unreadOnly bool, beforeID snowflake.ID, limit int) ([]notificationdomain.Notification, pagination.PageInfo, error) {
	rows, err := s.repo.List(ctx, s.db, tenantID, unreadOnly, beforeID, limit+1)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return pagination.BuildPage(rows, limit, func(n notificationdomain.Notification) int64 {
		return int64(n.ID)
	})
}

func (s *Service) MarkRead(ctx context.Context, tenantID, id snowflake.ID) (bool, error) {
	return s.repo.MarkRead(ctx, s.db, tenantID, id)
}

func (s *Service) DeleteRead(ctx context.Context, tenantID snowflake.ID) (int64, error) {
	return s.repo.DeleteRead(ctx, s.db, tenantID)
}
