package application

import (
	"context"
	"errors"
	"testing"

	"keygate/contexts/card-network/gateway-registry/adapters/memory"
	"keygate/contexts/card-network/gateway-registry/adapters/mockcheck"
	domainerrors "keygate/contexts/card-network/gateway-registry/domain/errors"
	"keygate/contexts/card-network/gateway-registry/ports"
)

type fakeLedger struct {
	balance int64
	calls   int
}

func (f *fakeLedger) TryConsume(_ context.Context, _ int64, cost int64) (ports.ConsumeOutcome, error) {
	f.calls++
	if f.balance < cost {
		return ports.ConsumeOutcome{}, errors.New("insufficient credits")
	}
	f.balance -= cost
	return ports.ConsumeOutcome{Granted: true, Remaining: f.balance}, nil
}

type approvingChecker struct {
	calls int
}

func (c *approvingChecker) Check(_ context.Context, _ ports.CardCheckRequest) (ports.CardCheckResult, error) {
	c.calls++
	return ports.CardCheckResult{Emoji: "✅", Status: ports.VerdictApproved, Msg: "Card approved!"}, nil
}

func newCheckService(t *testing.T, balance int64) (Service, *memory.Store, *fakeLedger, *approvingChecker) {
	t.Helper()
	store := memory.NewStore()
	ledger := &fakeLedger{balance: balance}
	checker := &approvingChecker{}
	return Service{Repo: store, Ledger: ledger, Checker: checker}, store, ledger, checker
}

func TestAddGatewayValidatesInput(t *testing.T) {
	service, _, _, _ := newCheckService(t, 0)

	for _, tc := range []struct{ name, endpoint string }{
		{"", "/api/gateways/stripe"},
		{"Stripe Charge", ""},
		{"  ", "  "},
	} {
		if _, err := service.AddGateway(context.Background(), tc.name, tc.endpoint); !errors.Is(err, domainerrors.ErrInvalidGatewayInput) {
			t.Fatalf("name=%q endpoint=%q: expected invalid input, got %v", tc.name, tc.endpoint, err)
		}
	}
}

func TestCheckCardDebitsThenChecks(t *testing.T) {
	service, _, ledger, checker := newCheckService(t, 5)
	gateway, err := service.AddGateway(context.Background(), "Stripe Charge", "/api/gateways/stripe")
	if err != nil {
		t.Fatalf("add gateway failed: %v", err)
	}

	result, remaining, err := service.CheckCard(context.Background(), gateway.ID, 1, "4242424242424242")
	if err != nil {
		t.Fatalf("check card failed: %v", err)
	}
	if result.Status != ports.VerdictApproved {
		t.Fatalf("unexpected verdict: %+v", result)
	}
	if remaining != 4 {
		t.Fatalf("expected remaining 4, got %d", remaining)
	}
	if ledger.calls != 1 || checker.calls != 1 {
		t.Fatalf("expected one debit and one check, got %d and %d", ledger.calls, checker.calls)
	}
}

func TestCheckCardInsufficientCreditsSkipsChecker(t *testing.T) {
	service, _, _, checker := newCheckService(t, 0)
	gateway, err := service.AddGateway(context.Background(), "Stripe Charge", "/api/gateways/stripe")
	if err != nil {
		t.Fatalf("add gateway failed: %v", err)
	}

	if _, _, err := service.CheckCard(context.Background(), gateway.ID, 1, "4242424242424242"); err == nil {
		t.Fatal("expected debit rejection to propagate")
	}
	if checker.calls != 0 {
		t.Fatalf("checker must not run without a granted debit, got %d calls", checker.calls)
	}
}

func TestCheckCardInactiveGatewayRefusedBeforeDebit(t *testing.T) {
	service, _, ledger, _ := newCheckService(t, 5)
	gateway, err := service.AddGateway(context.Background(), "Stripe Charge", "/api/gateways/stripe")
	if err != nil {
		t.Fatalf("add gateway failed: %v", err)
	}
	if _, err := service.ToggleGateway(context.Background(), gateway.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if _, _, err := service.CheckCard(context.Background(), gateway.ID, 1, "4242424242424242"); !errors.Is(err, domainerrors.ErrGatewayInactive) {
		t.Fatalf("expected inactive gateway error, got %v", err)
	}
	if ledger.calls != 0 {
		t.Fatalf("no debit expected for inactive gateway, got %d calls", ledger.calls)
	}
}

func TestCheckCardUnknownGateway(t *testing.T) {
	service, _, _, _ := newCheckService(t, 5)

	if _, _, err := service.CheckCard(context.Background(), 99, 1, "4242424242424242"); !errors.Is(err, domainerrors.ErrGatewayNotFound) {
		t.Fatalf("expected gateway not found, got %v", err)
	}
}

type brokenChecker struct{}

func (brokenChecker) Check(_ context.Context, _ ports.CardCheckRequest) (ports.CardCheckResult, error) {
	return ports.CardCheckResult{}, errors.New("upstream timeout")
}

func TestCheckCardCheckerFailureKeepsDebit(t *testing.T) {
	store := memory.NewStore()
	ledger := &fakeLedger{balance: 5}
	service := Service{Repo: store, Ledger: ledger, Checker: brokenChecker{}}

	gateway, err := service.AddGateway(context.Background(), "Stripe Charge", "/api/gateways/stripe")
	if err != nil {
		t.Fatalf("add gateway failed: %v", err)
	}

	_, remaining, err := service.CheckCard(context.Background(), gateway.ID, 1, "4242424242424242")
	if !errors.Is(err, domainerrors.ErrCheckerUnavailable) {
		t.Fatalf("expected checker unavailable, got %v", err)
	}
	// Refund-on-failure is the caller's policy; the ledger keeps the debit.
	if remaining != 4 || ledger.balance != 4 {
		t.Fatalf("expected debit to stand, remaining=%d balance=%d", remaining, ledger.balance)
	}
}

func TestMockCheckerReturnsCannedVerdicts(t *testing.T) {
	checker := mockcheck.NewChecker(1)

	for i := 0; i < 10; i++ {
		result, err := checker.Check(context.Background(), ports.CardCheckRequest{})
		if err != nil {
			t.Fatalf("mock check failed: %v", err)
		}
		if result.Status != ports.VerdictApproved && result.Status != ports.VerdictDeclined {
			t.Fatalf("unexpected verdict %q", result.Status)
		}
	}
}
