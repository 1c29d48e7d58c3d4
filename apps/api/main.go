package main

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/config"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/migration"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/server"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// API-only binary. Lifecycle transitions run in apps/scheduler.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		server.Module,
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
