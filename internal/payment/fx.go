package payment

import (
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewLedger),
)
