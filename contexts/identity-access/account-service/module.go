package accountservice

import (
	"log/slog"

	httpadapter "keygate/contexts/identity-access/account-service/adapters/http"
	"keygate/contexts/identity-access/account-service/adapters/memory"
	postgresadapter "keygate/contexts/identity-access/account-service/adapters/postgres"
	"keygate/contexts/identity-access/account-service/application"
	"keygate/contexts/identity-access/account-service/ports"
)

// Module is the account-service composition root exposed to runtime wiring.
// Service is used directly by the operator command dispatcher; Handler by
// the HTTP platform.
type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Keys       ports.KeyGenerator
	KeyRetries int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:       deps.Repository,
		Keys:       deps.Keys,
		KeyRetries: deps.KeyRetries,
		Logger:     deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Keys:       postgresadapter.UUIDKeyGenerator{},
		KeyRetries: 5,
		Logger:     logger,
	})
	module.Store = store
	return module
}
