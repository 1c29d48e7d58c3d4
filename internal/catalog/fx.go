package catalog

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
