package order

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
