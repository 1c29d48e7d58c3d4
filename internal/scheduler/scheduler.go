// Package scheduler drives the subscription lifecycle: grace-period entry,
// final expiry, and pre-expiry warning notifications. It is started explicitly
// at the composition root rather than hidden inside a service constructor.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/config"
	notificationdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/domain"
	notificationservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/service"
	obsmetrics "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/metrics"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler: missing required dependency")

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	SubRepo   subscriptiondomain.Repository
	PlanRepo  plandomain.Repository
	NotifSvc  *notificationservice.Service
	Lifecycle *config.LifecycleConfigHolder
	Config    Config `optional:"true"`
}

type Scheduler struct {
	db        *gorm.DB
	log       *zap.Logger
	cfg       Config
	genID     *snowflake.Node
	clock     clock.Clock
	subRepo   subscriptiondomain.Repository
	planRepo  plandomain.Repository
	notifSvc  *notificationservice.Service
	lifecycle *config.LifecycleConfigHolder
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.GenID == nil || p.Clock == nil || p.SubRepo == nil || p.PlanRepo == nil || p.NotifSvc == nil || p.Lifecycle == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:        p.DB,
		log:       p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:       p.Config.withDefaults(),
		genID:     p.GenID,
		clock:     p.Clock,
		subRepo:   p.SubRepo,
		planRepo:  p.PlanRepo,
		notifSvc:  p.NotifSvc,
		lifecycle: p.Lifecycle,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	batchSize int,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	ctx, run, owner := s.ensureJobRun(ctx, name, batchSize)
	if owner {
		s.logJobStart(run)
	}
	schedMetrics := obsmetrics.Scheduler()
	schedMetrics.IncJobRun(name)

	err := fn(ctx)
	schedMetrics.ObserveJobDuration(name, time.Since(start))
	if owner {
		if err != nil && run != nil && run.errorCount == 0 {
			run.IncError()
		}
		s.logJobFinish(run)
	}
	if err == nil {
		return nil
	}

	// deadline is a soft timeout; the next tick picks up where we stopped
	isTimeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
	if isTimeout {
		schedMetrics.IncJobTimeout(name)
	}
	schedMetrics.IncJobError(name, err)
	if isTimeout {
		s.log.Warn("job timed out",
			zap.String("job", name),
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}

// RunOnce executes every lifecycle job a single time. Jobs are independent;
// a failure in one does not stop the others.
func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error

	jobs := []struct {
		Name string
		Run  func(context.Context) error
	}{
		{"grace_transitions", s.GraceTransitionsJob},
		{"expiry_transitions", s.ExpiryTransitionsJob},
		{"expiry_warnings", s.ExpiryWarningsJob},
	}

	for _, job := range jobs {
		if !s.isJobEnabled(job.Name) {
			continue
		}
		name, fn := job.Name, job.Run
		err = errors.Join(err, s.runJob(parent, name, s.cfg.BatchSize, s.cfg.JobTimeout, fn))
	}

	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()
	nextRun := s.clock.Now().Add(s.cfg.RunInterval)
	schedMetrics := obsmetrics.Scheduler()

	for {
		runLag := time.Since(nextRun)
		if runLag > 0 {
			schedMetrics.ObserveRunLoopLag(runLag)
		}
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}
		nextRun = nextRun.Add(s.cfg.RunInterval)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) isJobEnabled(jobName string) bool {
	if len(s.cfg.EnabledJobs) == 0 {
		return true
	}
	for _, enabled := range s.cfg.EnabledJobs {
		if enabled == jobName {
			return true
		}
	}
	return false
}

// GraceTransitionsJob moves lapsed ACTIVE subscriptions into GRACE_PERIOD.
// Each batch claims rows with SKIP LOCKED and commits the transition together
// with its notification.
func (s *Scheduler) GraceTransitionsJob(ctx context.Context) error {
	ctx, run, owner := s.ensureJobRun(ctx, "grace_transitions", s.cfg.BatchSize)
	if owner {
		s.logJobStart(run)
		defer s.logJobFinish(run)
	}
	now := s.clock.Now()
	graceDays := s.lifecycle.Get().GracePeriodDays
	var jobErr error

	for {
		if ctx.Err() != nil {
			return errors.Join(jobErr, ctx.Err())
		}

		processed := 0
		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			subs, err := s.subRepo.FetchDueForGrace(ctx, tx, now, s.cfg.BatchSize)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				obsmetrics.Scheduler().IncBatchDeferred("grace_transitions", obsmetrics.SchedulerBatchDeferredReasonSkipLockedEmpty)
				return nil
			}
			for _, sub := range subs {
				days := sub.GraceDaysOrDefault(graceDays)
				graceEnd := sub.EndDate.AddDate(0, 0, days)
				updated, err := s.subRepo.MarkGracePeriod(ctx, tx, sub.ID, graceEnd, now)
				if err != nil {
					return err
				}
				if !updated {
					continue
				}
				if _, err := s.notifSvc.Emit(ctx, tx, notificationservice.EmitInput{
					TenantID: sub.TenantID,
					Type:     notificationdomain.TypeSubscriptionGracePeriod,
					Title:    "Subscription in grace period",
					Message:  fmt.Sprintf("Your subscription expired and is now in a %d-day grace period ending %s.", days, graceEnd.Format("2006-01-02")),
					Metadata: map[string]any{
						"subscription_id":  int64(sub.ID),
						"grace_period_end": graceEnd.Format(time.RFC3339),
					},
				}); err != nil {
					return err
				}
				obsmetrics.Scheduler().IncSubscriptionTransition(
					string(subscriptiondomain.SubscriptionStatusActive),
					string(subscriptiondomain.SubscriptionStatusGracePeriod),
				)
				processed++
			}
			return nil
		})
		if txErr != nil {
			jobErr = errors.Join(jobErr, txErr)
			s.logSchedulerError(run, "scheduler.grace.batch.failed", "grace_transitions", 0, txErr)
			break
		}
		run.AddProcessed(processed)
		if processed == 0 {
			break
		}
		obsmetrics.Scheduler().AddBatchProcessed("grace_transitions", "subscriptions", processed)
	}

	return jobErr
}

// ExpiryTransitionsJob finalizes GRACE_PERIOD subscriptions whose grace window
// has fully elapsed.
func (s *Scheduler) ExpiryTransitionsJob(ctx context.Context) error {
	ctx, run, owner := s.ensureJobRun(ctx, "expiry_transitions", s.cfg.BatchSize)
	if owner {
		s.logJobStart(run)
		defer s.logJobFinish(run)
	}
	now := s.clock.Now()
	var jobErr error

	for {
		if ctx.Err() != nil {
			return errors.Join(jobErr, ctx.Err())
		}

		processed := 0
		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			subs, err := s.subRepo.FetchDueForExpiry(ctx, tx, now, s.cfg.BatchSize)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				obsmetrics.Scheduler().IncBatchDeferred("expiry_transitions", obsmetrics.SchedulerBatchDeferredReasonSkipLockedEmpty)
				return nil
			}
			for _, sub := range subs {
				updated, err := s.subRepo.MarkExpired(ctx, tx, sub.ID, now)
				if err != nil {
					return err
				}
				if !updated {
					continue
				}
				if _, err := s.notifSvc.Emit(ctx, tx, notificationservice.EmitInput{
					TenantID: sub.TenantID,
					Type:     notificationdomain.TypeSubscriptionExpired,
					Title:    "Subscription expired",
					Message:  "Your subscription has expired. Renew to restore access to plan features.",
					Metadata: map[string]any{
						"subscription_id": int64(sub.ID),
					},
				}); err != nil {
					return err
				}
				obsmetrics.Scheduler().IncSubscriptionTransition(
					string(subscriptiondomain.SubscriptionStatusGracePeriod),
					string(subscriptiondomain.SubscriptionStatusExpired),
				)
				processed++
			}
			return nil
		})
		if txErr != nil {
			jobErr = errors.Join(jobErr, txErr)
			s.logSchedulerError(run, "scheduler.expiry.batch.failed", "expiry_transitions", 0, txErr)
			break
		}
		run.AddProcessed(processed)
		if processed == 0 {
			break
		}
		obsmetrics.Scheduler().AddBatchProcessed("expiry_transitions", "subscriptions", processed)
	}

	return jobErr
}

// ExpiryWarningsJob emits the pre-expiry warnings. Each configured offset is
// an independent pass so a failure at one offset never blocks the others, and
// a 24h lookback on matching metadata keeps repeated runs from duplicating a
// warning for the same day count.
func (s *Scheduler) ExpiryWarningsJob(ctx context.Context) error {
	ctx, run, owner := s.ensureJobRun(ctx, "expiry_warnings", s.cfg.BatchSize)
	if owner {
		s.logJobStart(run)
		defer s.logJobFinish(run)
	}
	now := s.clock.Now()
	offsets := s.lifecycle.Get().WarningOffsetDays
	var jobErr error

	for _, offset := range offsets {
		if ctx.Err() != nil {
			return errors.Join(jobErr, ctx.Err())
		}
		if err := s.warnForOffset(ctx, run, now, offset); err != nil {
			jobErr = errors.Join(jobErr, err)
			s.logSchedulerError(run, "scheduler.warning.offset.failed", "expiry_warnings", 0, err,
				zap.Int("days_remaining", offset),
			)
		}
	}

	return jobErr
}

// warnForOffset pages through every ACTIVE subscription ending on the target
// day, not just the first batch: a popular renewal day can hold more rows
// than one batch, and rows beyond it would otherwise never be warned.
func (s *Scheduler) warnForOffset(ctx context.Context, run *jobRun, now time.Time, daysRemaining int) error {
	target := now.AddDate(0, 0, daysRemaining).UTC()
	dayStart := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	dedupSince := now.Add(-24 * time.Hour)

	var offsetErr error
	var afterID snowflake.ID
	for {
		subs, err := s.subRepo.FetchExpiringOn(ctx, s.db, dayStart, afterID, s.cfg.BatchSize)
		if err != nil {
			return errors.Join(offsetErr, err)
		}
		if len(subs) == 0 {
			return offsetErr
		}
		afterID = subs[len(subs)-1].ID

		for _, sub := range subs {
			if ctx.Err() != nil {
				return errors.Join(offsetErr, ctx.Err())
			}
			if err := s.warnSubscription(ctx, run, sub, daysRemaining, dedupSince); err != nil {
				offsetErr = errors.Join(offsetErr, err)
			}
		}
		if len(subs) < s.cfg.BatchSize {
			return offsetErr
		}
	}
}

func (s *Scheduler) warnSubscription(ctx context.Context, run *jobRun, sub subscriptiondomain.Subscription, daysRemaining int, dedupSince time.Time) error {
	seen, err := s.notifSvc.HasRecentExpiryWarning(ctx, s.db, sub.TenantID, sub.ID, daysRemaining, dedupSince)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	planName := ""
	if plan, err := s.planRepo.FindByID(ctx, s.db, sub.PlanID); err == nil && plan != nil {
		planName = plan.Name
	}
	title := fmt.Sprintf("Subscription expires in %d days", daysRemaining)
	if daysRemaining == 1 {
		title = "Subscription expires in 1 day"
	}
	message := fmt.Sprintf("Your subscription expires on %s. Renew to keep your store online.", sub.EndDate.Format("2006-01-02"))
	if planName != "" {
		message = fmt.Sprintf("Your %s subscription expires on %s. Renew to keep your store online.", planName, sub.EndDate.Format("2006-01-02"))
	}

	if _, err := s.notifSvc.Emit(ctx, s.db, notificationservice.EmitInput{
		TenantID: sub.TenantID,
		Type:     notificationdomain.TypeSubscriptionExpiring,
		Title:    title,
		Message:  message,
		Metadata: map[string]any{
			"subscription_id": int64(sub.ID),
			"days_remaining":  daysRemaining,
		},
	}); err != nil {
		return err
	}
	run.AddProcessed(1)
	return nil
}
