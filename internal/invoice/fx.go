package invoice

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
