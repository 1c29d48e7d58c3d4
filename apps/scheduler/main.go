package main

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/config"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/scheduler"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// Scheduler-only binary. No HTTP server; migrations are owned by the API
// deployment so this process only needs the domain repositories it drives.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		subscription.Module,
		plan.Module,
		notification.Module,

		scheduler.Module,
		fx.Invoke(scheduler.Start),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
