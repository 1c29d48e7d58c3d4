package service

import (
	"context"
	"testing"

	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	limits *quotadomain.Limits
	err    error
}

func (s *stubResolver) Resolve(ctx context.Context, tenantID snowflake.ID) (*quotadomain.Limits, error) {
	return s.limits, s.err
}

type stubCounter struct {
	counts quotadomain.UsageCounts
	calls  int
}

func (s *stubCounter) Count(ctx context.Context, tenantID snowflake.ID) (quotadomain.UsageCounts, error) {
	s.calls++
	return s.counts, nil
}

func newTestGate(resolver quotadomain.Resolver, counter quotadomain.Counter) quotadomain.Gate {
	return NewGate(GateParams{
		Log:      zap.NewNop(),
		Resolver: resolver,
		Counter:  counter,
	})
}

func TestGateDeniesAtLimit(t *testing.T) {
	resolver := &stubResolver{limits: &quotadomain.Limits{
		Categories: plandomain.Capped(5),
	}}
	counter := &stubCounter{counts: quotadomain.UsageCounts{CategoryCount: 5}}

	decision, err := newTestGate(resolver, counter).Check(context.Background(), 1, quotadomain.ResourceCategory)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, quotadomain.ReasonCategoryLimitReached, decision.Reason)
	assert.Equal(t, int64(5), decision.Limit)
	assert.Equal(t, int64(5), decision.Current)
}

func TestGateAllowsBelowLimit(t *testing.T) {
	resolver := &stubResolver{limits: &quotadomain.Limits{
		Products: plandomain.Capped(5),
	}}
	counter := &stubCounter{counts: quotadomain.UsageCounts{ProductCount: 4}}

	decision, err := newTestGate(resolver, counter).Check(context.Background(), 1, quotadomain.ResourceProduct)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, quotadomain.ReasonNone, decision.Reason)
}

func TestGateUnlimitedSkipsCounter(t *testing.T) {
	resolver := &stubResolver{limits: &quotadomain.Limits{
		OrdersPerMonth: plandomain.Unlimited(),
	}}
	counter := &stubCounter{}

	decision, err := newTestGate(resolver, counter).Check(context.Background(), 1, quotadomain.ResourceOrder)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, counter.calls, "unlimited plans must not pay for a count query")
}

func TestGateNoSubscription(t *testing.T) {
	resolver := &stubResolver{err: quotadomain.ErrNoActiveSubscription}
	counter := &stubCounter{}

	decision, err := newTestGate(resolver, counter).Check(context.Background(), 1, quotadomain.ResourceProduct)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, quotadomain.ReasonNoSubscription, decision.Reason)
	assert.Zero(t, counter.calls)
}

func TestGateImageUploadFlag(t *testing.T) {
	counter := &stubCounter{}

	denied, err := newTestGate(&stubResolver{limits: &quotadomain.Limits{CanUploadImages: false}}, counter).
		Check(context.Background(), 1, quotadomain.ResourceImageUpload)
	require.NoError(t, err)
	assert.False(t, denied.Allowed)
	assert.Equal(t, quotadomain.ReasonImageUploadNotAllowed, denied.Reason)

	allowed, err := newTestGate(&stubResolver{limits: &quotadomain.Limits{CanUploadImages: true}}, counter).
		Check(context.Background(), 1, quotadomain.ResourceImageUpload)
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)
	assert.Zero(t, counter.calls, "flag checks never count usage")
}

func TestGateUnknownResource(t *testing.T) {
	resolver := &stubResolver{limits: &quotadomain.Limits{}}

	_, err := newTestGate(resolver, &stubCounter{}).Check(context.Background(), 1, quotadomain.Resource("bogus"))
	assert.ErrorIs(t, err, quotadomain.ErrUnknownResource)
}

func TestErrIfDenied(t *testing.T) {
	assert.NoError(t, quotadomain.ErrIfDenied(quotadomain.Allow()))

	err := quotadomain.ErrIfDenied(quotadomain.DenyLimit(quotadomain.ReasonProductLimitReached, 10, 10))
	require.Error(t, err)
	var denied *quotadomain.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, quotadomain.ReasonProductLimitReached, denied.Decision.Reason)
	assert.Equal(t, int64(10), denied.Decision.Limit)
}
