package subscription

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
