package main

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/config"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/migration"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/scheduler"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/server"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// The monolith binary: HTTP API and lifecycle scheduler in one process.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		server.Module,
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
