package plan

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(repository.Provide),
)
