package server

import (
	"errors"
	"net/http"
	"time"

	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetCurrentSubscription(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	view, err := s.subscriptionSvc.Current(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type renewSubscriptionRequest struct {
	PlanCode  string `json:"plan_code" binding:"required"`
	StartDate string `json:"start_date,omitempty"`
}

func (s *Server) RenewSubscription(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req renewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		startDate = parsed
	}

	subscription, err := s.subscriptionSvc.Renew(c.Request.Context(), tenantID, req.PlanCode, startDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscription)
}

type usageEntry struct {
	Limit   int64 `json:"limit"`
	Current int64 `json:"current"`
}

type usageResponse struct {
	PlanName        string                `json:"plan_name"`
	CanUploadImages bool                  `json:"can_upload_images"`
	Usage           map[string]usageEntry `json:"usage"`
}

// GetUsage reports the tenant's limits against live counts. Limits serialize
// with -1 meaning unlimited, matching the storage sentinel.
func (s *Server) GetUsage(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	limits, err := s.resolver.Resolve(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, quotadomain.ErrNoActiveSubscription) {
			AbortWithError(c, quotadomain.ErrIfDenied(quotadomain.Deny(quotadomain.ReasonNoSubscription)))
			return
		}
		AbortWithError(c, err)
		return
	}
	counts, err := s.counter.Count(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, usageResponse{
		PlanName:        limits.PlanName,
		CanUploadImages: limits.CanUploadImages,
		Usage: map[string]usageEntry{
			"products":          {Limit: limits.Products.Value(), Current: counts.ProductCount},
			"categories":        {Limit: limits.Categories.Value(), Current: counts.CategoryCount},
			"orders_this_month": {Limit: limits.OrdersPerMonth.Value(), Current: counts.MonthlyOrderCount},
		},
	})
}
