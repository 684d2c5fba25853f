package operatorservice

import (
	"context"
	"log/slog"

	"keygate/contexts/identity-access/operator-service/adapters/memory"
	"keygate/contexts/identity-access/operator-service/application"
	"keygate/contexts/identity-access/operator-service/ports"
)

// Module is the operator-service composition root. The command dispatcher
// consumes Service directly; there is no HTTP surface, the roster is managed
// over the command channel only.
type Module struct {
	Service *application.Service
	Roster  *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	OwnerIDs []int64
	Roster   ports.RosterStore
	Logger   *slog.Logger
}

func NewModule(ctx context.Context, deps Dependencies) (Module, error) {
	service, err := application.NewService(ctx, deps.OwnerIDs, deps.Roster, deps.Logger)
	if err != nil {
		return Module{}, err
	}
	return Module{Service: service}, nil
}

// NewInMemoryModule builds a development/testing module with an in-memory
// roster store.
func NewInMemoryModule(ctx context.Context, ownerIDs []int64, logger *slog.Logger) (Module, error) {
	roster := memory.NewStore()
	module, err := NewModule(ctx, Dependencies{
		OwnerIDs: ownerIDs,
		Roster:   roster,
		Logger:   logger,
	})
	if err != nil {
		return Module{}, err
	}
	module.Roster = roster
	return module, nil
}
