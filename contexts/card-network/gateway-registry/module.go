package gatewayregistry

import (
	"log/slog"
	"time"

	httpadapter "keygate/contexts/card-network/gateway-registry/adapters/http"
	"keygate/contexts/card-network/gateway-registry/adapters/memory"
	"keygate/contexts/card-network/gateway-registry/adapters/mockcheck"
	"keygate/contexts/card-network/gateway-registry/application"
	"keygate/contexts/card-network/gateway-registry/ports"
)

// Module is the gateway-registry composition root exposed to runtime wiring.
type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Ledger     ports.CreditLedger
	Checker    ports.CardChecker
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Ledger:  deps.Ledger,
		Checker: deps.Checker,
		Logger:  deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and the canned-verdict checker.
func NewInMemoryModule(ledger ports.CreditLedger, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Ledger:     ledger,
		Checker:    mockcheck.NewChecker(time.Now().UnixNano()),
		Logger:     logger,
	})
	module.Store = store
	return module
}
