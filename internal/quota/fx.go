package quota

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quota.service",
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewCounter),
	fx.Provide(service.NewGate),
)
