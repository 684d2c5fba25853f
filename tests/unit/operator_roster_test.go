package unit

import (
	"context"
	"testing"

	operatorservice "keygate/contexts/identity-access/operator-service"
	"keygate/contexts/identity-access/operator-service/adapters/memory"
	"keygate/contexts/identity-access/operator-service/ports"
)

func TestRosterGrantsSurviveRestart(t *testing.T) {
	roster := memory.NewStore()

	module, err := operatorservice.NewModule(context.Background(), operatorservice.Dependencies{
		OwnerIDs: []int64{1000},
		Roster:   roster,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	if _, err := module.Service.AddAdmin(context.Background(), 1000, "2000"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	// Same persisted roster, fresh process.
	restarted, err := operatorservice.NewModule(context.Background(), operatorservice.Dependencies{
		OwnerIDs: []int64{1000},
		Roster:   roster,
	})
	if err != nil {
		t.Fatalf("rebuild module: %v", err)
	}

	if tier := restarted.Service.Classify(2000); tier != ports.TierAdmin {
		t.Fatalf("expected granted admin to survive restart, got %v", tier)
	}
	if tier := restarted.Service.Classify(1000); tier != ports.TierOwner {
		t.Fatalf("expected owner tier after restart, got %v", tier)
	}
}

func TestOwnerMergeIsIdempotentAcrossRestarts(t *testing.T) {
	roster := memory.NewStore()

	for i := 0; i < 3; i++ {
		module, err := operatorservice.NewModule(context.Background(), operatorservice.Dependencies{
			OwnerIDs: []int64{1000},
			Roster:   roster,
		})
		if err != nil {
			t.Fatalf("build %d: %v", i, err)
		}
		admins, err := module.Service.ListAdmins(1000)
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(admins) != 1 || admins[0] != 1000 {
			t.Fatalf("restart %d: expected roster [1000], got %v", i, admins)
		}
	}
}

func TestConfiguredOwnersExtendPersistedRoster(t *testing.T) {
	roster := memory.NewStore()
	if err := roster.Save(context.Background(), []int64{2000}); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	module, err := operatorservice.NewModule(context.Background(), operatorservice.Dependencies{
		OwnerIDs: []int64{1000},
		Roster:   roster,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	admins, err := module.Service.ListAdmins(1000)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 2 || admins[0] != 1000 || admins[1] != 2000 {
		t.Fatalf("expected merged roster [1000 2000], got %v", admins)
	}
}
