// Package domain defines the quota gate contracts: plan limit resolution,
// live usage counting, and the allow/deny decision.
package domain

import (
	"context"
	"errors"

	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	"github.com/bwmarrin/snowflake"
)

// Resource identifies the gated mutation kind.
type Resource string

const (
	ResourceProduct     Resource = "product"
	ResourceCategory    Resource = "category"
	ResourceOrder       Resource = "order"
	ResourceImageUpload Resource = "image_upload"
)

// Reason is the machine-readable denial code surfaced to callers.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonNoSubscription        Reason = "NO_SUBSCRIPTION"
	ReasonProductLimitReached   Reason = "PRODUCT_LIMIT_REACHED"
	ReasonCategoryLimitReached  Reason = "CATEGORY_LIMIT_REACHED"
	ReasonOrderLimitReached     Reason = "ORDER_LIMIT_REACHED"
	ReasonImageUploadNotAllowed Reason = "IMAGE_UPLOAD_NOT_ALLOWED"
)

var (
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrUnknownResource      = errors.New("unknown quota resource")
)

// Limits is the tenant's resolved plan caps.
type Limits struct {
	PlanName        string
	Categories      plandomain.Limit
	Products        plandomain.Limit
	OrdersPerMonth  plandomain.Limit
	CanUploadImages bool
}

// UsageCounts is the tenant's live consumption, computed fresh per check.
type UsageCounts struct {
	ProductCount      int64 `json:"product_count"`
	CategoryCount     int64 `json:"category_count"`
	MonthlyOrderCount int64 `json:"monthly_order_count"`
}

// Decision is the gate outcome. Limit and Current are populated only for
// limit-reached denials.
type Decision struct {
	Allowed bool
	Reason  Reason
	Limit   int64
	Current int64
}

// Allow is the zero-reason positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny builds a denial without numbers.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// DenyLimit builds a limit-reached denial carrying the concrete numbers.
func DenyLimit(reason Reason, limit, current int64) Decision {
	return Decision{Reason: reason, Limit: limit, Current: current}
}

// DeniedError carries a denial decision across service boundaries so the
// HTTP layer can render the 403 contract without re-checking.
type DeniedError struct {
	Decision Decision
}

func (e *DeniedError) Error() string {
	return "quota denied: " + string(e.Decision.Reason)
}

// ErrIfDenied converts a denial decision into a DeniedError, nil otherwise.
func ErrIfDenied(d Decision) error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Decision: d}
}

// Resolver looks up the tenant's active plan limits.
type Resolver interface {
	// Resolve returns ErrNoActiveSubscription when no row matches
	// status = ACTIVE AND end_date > now.
	Resolve(ctx context.Context, tenantID snowflake.ID) (*Limits, error)
}

// Counter computes live usage counts.
type Counter interface {
	Count(ctx context.Context, tenantID snowflake.ID) (UsageCounts, error)
}

// Gate decides whether a mutating operation may proceed.
type Gate interface {
	Check(ctx context.Context, tenantID snowflake.ID, resource Resource) (Decision, error)
}
