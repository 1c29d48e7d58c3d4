package service

import (
	"context"
	"testing"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	notificationdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/domain"
	notificationrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupNotificationTest(t *testing.T) (*Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notificationdomain.Notification{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fakeClock := clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fakeClock,
		Repo:  notificationrepo.Provide(),
	})
	return svc, node, fakeClock
}

func TestEmitAndList(t *testing.T) {
	svc, node, _ := setupNotificationTest(t)
	tenantID := node.Generate()
	ctx := context.Background()

	emitted, err := svc.Emit(ctx, nil, EmitInput{
		TenantID: tenantID,
		Type:     notificationdomain.TypeSubscriptionExpiring,
		Title:    "Subscription expiring soon",
		Message:  "Your subscription ends in 3 days.",
		Metadata: map[string]any{"days_remaining": 3},
	})
	require.NoError(t, err)
	assert.False(t, emitted.IsRead)

	days, ok := emitted.MetadataInt("days_remaining")
	require.True(t, ok)
	assert.Equal(t, int64(3), days)

	// Another tenant's feed stays empty.
	other, _, err := svc.List(ctx, node.Generate(), false, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, other)

	mine, _, err := svc.List(ctx, tenantID, false, 0, 50)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, emitted.ID, mine[0].ID)
}

func TestMarkReadAndUnreadFilter(t *testing.T) {
	svc, node, _ := setupNotificationTest(t)
	tenantID := node.Generate()
	ctx := context.Background()

	first, err := svc.Emit(ctx, nil, EmitInput{TenantID: tenantID, Type: notificationdomain.TypeSubscriptionExpiring, Title: "a"})
	require.NoError(t, err)
	_, err = svc.Emit(ctx, nil, EmitInput{TenantID: tenantID, Type: notificationdomain.TypeSubscriptionExpired, Title: "b"})
	require.NoError(t, err)

	updated, err := svc.MarkRead(ctx, tenantID, first.ID)
	require.NoError(t, err)
	assert.True(t, updated)

	unread, _, err := svc.List(ctx, tenantID, true, 0, 50)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.NotEqual(t, first.ID, unread[0].ID)

	// Wrong tenant and unknown id both report no row touched.
	updated, err = svc.MarkRead(ctx, node.Generate(), first.ID)
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = svc.MarkRead(ctx, tenantID, node.Generate())
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeleteReadOnlyRemovesRead(t *testing.T) {
	svc, node, _ := setupNotificationTest(t)
	tenantID := node.Generate()
	ctx := context.Background()

	read, err := svc.Emit(ctx, nil, EmitInput{TenantID: tenantID, Type: notificationdomain.TypeSubscriptionExpiring, Title: "read me"})
	require.NoError(t, err)
	_, err = svc.Emit(ctx, nil, EmitInput{TenantID: tenantID, Type: notificationdomain.TypeSubscriptionExpired, Title: "keep me"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, tenantID, read.ID)
	require.NoError(t, err)

	deleted, err := svc.DeleteRead(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, _, err := svc.List(ctx, tenantID, false, 0, 50)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "keep me", remaining[0].Title)
}

func TestListPaginates(t *testing.T) {
	svc, node, _ := setupNotificationTest(t)
	tenantID := node.Generate()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Emit(ctx, nil, EmitInput{TenantID: tenantID, Type: notificationdomain.TypeSubscriptionExpiring, Title: "n"})
		require.NoError(t, err)
	}

	first, pageInfo, err := svc.List(ctx, tenantID, false, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, pageInfo.HasMore)
	require.NotEmpty(t, pageInfo.NextPageToken)

	cursor, err := pagination.DecodeCursor(pageInfo.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, int64(first[1].ID), cursor.LastID)

	second, pageInfo, err := svc.List(ctx, tenantID, false, snowflake.ID(cursor.LastID), 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.True(t, second[0].ID < first[1].ID, "pages walk strictly backwards")
	assert.True(t, pageInfo.HasMore)

	last, pageInfo, err := svc.List(ctx, tenantID, false, second[1].ID, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.False(t, pageInfo.HasMore)
	assert.Empty(t, pageInfo.NextPageToken)
}

func TestHasRecentExpiryWarning(t *testing.T) {
	svc, node, fakeClock := setupNotificationTest(t)
	tenantID := node.Generate()
	subscriptionID := node.Generate()
	ctx := context.Background()

	_, err := svc.Emit(ctx, nil, EmitInput{
		TenantID: tenantID,
		Type:     notificationdomain.TypeSubscriptionExpiring,
		Title:    "Subscription expiring soon",
		Metadata: map[string]any{
			"subscription_id": int64(subscriptionID),
			"days_remaining":  7,
		},
	})
	require.NoError(t, err)

	since := fakeClock.Now().Add(-24 * time.Hour)

	found, err := svc.HasRecentExpiryWarning(ctx, nil, tenantID, subscriptionID, 7, since)
	require.NoError(t, err)
	assert.True(t, found)

	// Different day count or different subscription does not match.
	found, err = svc.HasRecentExpiryWarning(ctx, nil, tenantID, subscriptionID, 3, since)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = svc.HasRecentExpiryWarning(ctx, nil, tenantID, node.Generate(), 7, since)
	require.NoError(t, err)
	assert.False(t, found)

	// Outside the lookback window the warning no longer counts.
	found, err = svc.HasRecentExpiryWarning(ctx, nil, tenantID, subscriptionID, 7, fakeClock.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, found)
}
