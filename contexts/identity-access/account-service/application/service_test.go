package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"keygate/contexts/identity-access/account-service/adapters/memory"
	postgresadapter "keygate/contexts/identity-access/account-service/adapters/postgres"
	domainerrors "keygate/contexts/identity-access/account-service/domain/errors"
	"keygate/contexts/identity-access/account-service/ports"
)

func newService(store *memory.Store) Service {
	return Service{
		Repo:       store,
		Keys:       postgresadapter.UUIDKeyGenerator{},
		KeyRetries: 5,
	}
}

func TestIssueKeyThenValidate(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	account, err := service.IssueKey(context.Background())
	if err != nil {
		t.Fatalf("issue key failed: %v", err)
	}
	if account.AccessKey == "" {
		t.Fatal("expected non-empty access key")
	}
	if account.Credits != 0 {
		t.Fatalf("expected zero starting credits, got %d", account.Credits)
	}

	found, err := service.ValidateKey(context.Background(), account.AccessKey)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if found.ID != account.ID {
		t.Fatalf("validate resolved wrong account: %d vs %d", found.ID, account.ID)
	}
}

func TestIssueKeyNeverDuplicates(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		account, err := service.IssueKey(context.Background())
		if err != nil {
			t.Fatalf("issue key %d failed: %v", i, err)
		}
		if seen[account.AccessKey] {
			t.Fatalf("duplicate access key issued: %s", account.AccessKey)
		}
		seen[account.AccessKey] = true
	}
}

type collidingKeys struct {
	mu    sync.Mutex
	calls int
}

func (g *collidingKeys) NewKey(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.calls < 3 {
		return "collision", nil
	}
	return "fresh-key", nil
}

func TestIssueKeyReRollsOnCollision(t *testing.T) {
	store := memory.NewStore()
	if _, err := store.CreateAccount(context.Background(), "collision"); err != nil {
		t.Fatalf("seed colliding account failed: %v", err)
	}

	keys := &collidingKeys{}
	service := Service{Repo: store, Keys: keys, KeyRetries: 5}

	account, err := service.IssueKey(context.Background())
	if err != nil {
		t.Fatalf("issue key failed: %v", err)
	}
	if account.AccessKey != "fresh-key" {
		t.Fatalf("expected re-rolled key, got %s", account.AccessKey)
	}
	if keys.calls < 3 {
		t.Fatalf("expected generator to be retried, got %d calls", keys.calls)
	}
}

type exhaustedKeys struct{}

func (exhaustedKeys) NewKey(_ context.Context) (string, error) {
	return "always-taken", nil
}

func TestIssueKeyExhaustsRetries(t *testing.T) {
	store := memory.NewStore()
	if _, err := store.CreateAccount(context.Background(), "always-taken"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	service := Service{Repo: store, Keys: exhaustedKeys{}, KeyRetries: 3}
	_, err := service.IssueKey(context.Background())
	if !errors.Is(err, domainerrors.ErrKeyGeneration) {
		t.Fatalf("expected key generation failure, got %v", err)
	}
}

func TestRevokeUnknownKeyReportsFalse(t *testing.T) {
	service := newService(memory.NewStore())

	revoked, err := service.RevokeKey(context.Background(), "missing")
	if err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if revoked {
		t.Fatal("expected revoke of unknown key to report false")
	}
}

func TestUpdatePreferencesValidatesLanguage(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	account, err := service.IssueKey(context.Background())
	if err != nil {
		t.Fatalf("issue key failed: %v", err)
	}

	bad := "fr"
	if _, err := service.UpdatePreferences(context.Background(), account.ID, ports.PreferencesUpdate{Language: &bad}); !errors.Is(err, domainerrors.ErrInvalidLanguage) {
		t.Fatalf("expected invalid language, got %v", err)
	}

	hindi := ports.LanguageHindi
	updated, err := service.UpdatePreferences(context.Background(), account.ID, ports.PreferencesUpdate{Language: &hindi})
	if err != nil {
		t.Fatalf("update preferences failed: %v", err)
	}
	if updated.Language != ports.LanguageHindi {
		t.Fatalf("language not applied: %s", updated.Language)
	}
}

func TestTryConsumeRejectsNonPositiveCost(t *testing.T) {
	service := newService(memory.NewStore())

	if _, err := service.TryConsume(context.Background(), 1, 0); !errors.Is(err, domainerrors.ErrInvalidCost) {
		t.Fatalf("expected invalid cost, got %v", err)
	}
}

func TestDemoScenarioThreeConcurrentConsumes(t *testing.T) {
	store := memory.NewStore()
	store.SeedAccount(ports.Account{ID: 1, AccessKey: "demo123", Credits: 1000, Language: ports.LanguageEnglish})
	service := newService(store)

	var wg sync.WaitGroup
	results := make([]ports.ConsumeResult, 3)
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.TryConsume(context.Background(), 1, 1)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 3; i++ {
		if errs[i] != nil {
			t.Fatalf("consume %d failed: %v", i, errs[i])
		}
		if !results[i].Granted {
			t.Fatalf("consume %d not granted", i)
		}
	}

	account, err := service.GetAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("get account failed: %v", err)
	}
	if account.Credits != 997 {
		t.Fatalf("expected final balance 997, got %d", account.Credits)
	}
}
