package service

import (
	"context"
	"errors"

	obsmetrics "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/metrics"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type GateParams struct {
	fx.In

	Log        *zap.Logger
	Resolver   quotadomain.Resolver
	Counter    quotadomain.Counter
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type gate struct {
	log        *zap.Logger
	resolver   quotadomain.Resolver
	counter    quotadomain.Counter
	obsMetrics *obsmetrics.Metrics
}

func NewGate(p GateParams) quotadomain.Gate {
	return &gate{
		log:        p.Log.Named("quota.gate"),
		resolver:   p.Resolver,
		counter:    p.Counter,
		obsMetrics: p.ObsMetrics,
	}
}

// Check runs the pre-mutation quota decision. Query failures surface as
// errors so callers fail closed. The counter is not invoked for unlimited
// plans or for the image-upload flag.
func (g *gate) Check(ctx context.Context, tenantID snowflake.ID, resource quotadomain.Resource) (quotadomain.Decision, error) {
	decision, err := g.check(ctx, tenantID, resource)
	if err != nil {
		return quotadomain.Decision{}, err
	}
	g.record(resource, decision)
	return decision, nil
}

func (g *gate) check(ctx context.Context, tenantID snowflake.ID, resource quotadomain.Resource) (quotadomain.Decision, error) {
	limits, err := g.resolver.Resolve(ctx, tenantID)
	if err != nil {
		if errors.Is(err, quotadomain.ErrNoActiveSubscription) {
			return quotadomain.Deny(quotadomain.ReasonNoSubscription), nil
		}
		return quotadomain.Decision{}, err
	}

	if resource == quotadomain.ResourceImageUpload {
		if !limits.CanUploadImages {
			return quotadomain.Deny(quotadomain.ReasonImageUploadNotAllowed), nil
		}
		return quotadomain.Allow(), nil
	}

	limit, reason, err := limitFor(limits, resource)
	if err != nil {
		return quotadomain.Decision{}, err
	}
	if limit.IsUnlimited() {
		return quotadomain.Allow(), nil
	}

	counts, err := g.counter.Count(ctx, tenantID)
	if err != nil {
		return quotadomain.Decision{}, err
	}
	current := currentFor(counts, resource)
	if !limit.Allows(current) {
		return quotadomain.DenyLimit(reason, limit.Value(), current), nil
	}
	return quotadomain.Allow(), nil
}

func limitFor(limits *quotadomain.Limits, resource quotadomain.Resource) (plandomain.Limit, quotadomain.Reason, error) {
	switch resource {
	case quotadomain.ResourceProduct:
		return limits.Products, quotadomain.ReasonProductLimitReached, nil
	case quotadomain.ResourceCategory:
		return limits.Categories, quotadomain.ReasonCategoryLimitReached, nil
	case quotadomain.ResourceOrder:
		return limits.OrdersPerMonth, quotadomain.ReasonOrderLimitReached, nil
	default:
		return plandomain.Limit{}, quotadomain.ReasonNone, quotadomain.ErrUnknownResource
	}
}

func currentFor(counts quotadomain.UsageCounts, resource quotadomain.Resource) int64 {
	switch resource {
	case quotadomain.ResourceProduct:
		return counts.ProductCount
	case quotadomain.ResourceCategory:
		return counts.CategoryCount
	case quotadomain.ResourceOrder:
		return counts.MonthlyOrderCount
	default:
		return 0
	}
}

func (g *gate) record(resource quotadomain.Resource, decision quotadomain.Decision) {
	if g.obsMetrics != nil {
		g.obsMetrics.RecordQuotaDecision(string(resource), decision.Allowed, string(decision.Reason))
	}
	if !decision.Allowed {
		g.log.Debug("quota denied",
			zap.String("resource", string(resource)),
			zap.String("reason", string(decision.Reason)),
			zap.Int64("limit", decision.Limit),
			zap.Int64("current", decision.Current),
		)
	}
}
