package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "keygate/contexts/card-network/gateway-registry/domain/errors"
	"keygate/contexts/card-network/gateway-registry/ports"
)

// Service owns the gateway catalog and the metered check use case.
type Service struct {
	Repo    ports.Repository
	Ledger  ports.CreditLedger
	Checker ports.CardChecker
	Logger  *slog.Logger
}

func (s Service) AddGateway(ctx context.Context, name string, endpoint string) (ports.Gateway, error) {
	name = strings.TrimSpace(name)
	endpoint = strings.TrimSpace(endpoint)
	if name == "" || endpoint == "" {
		return ports.Gateway{}, domainerrors.ErrInvalidGatewayInput
	}

	gateway, err := s.Repo.AddGateway(ctx, name, endpoint)
	if err != nil {
		return ports.Gateway{}, err
	}
	resolveLogger(s.Logger).Info("gateway added",
		"event", "gateway_added",
		"module", "card-network/gateway-registry",
		"layer", "application",
		"gateway_id", gateway.ID,
		"name", gateway.Name,
	)
	return gateway, nil
}

func (s Service) ToggleGateway(ctx context.Context, gatewayID int64) (bool, error) {
	toggled, err := s.Repo.ToggleGateway(ctx, gatewayID)
	if err != nil {
		return false, err
	}
	if toggled {
		resolveLogger(s.Logger).Info("gateway toggled",
			"event", "gateway_toggled",
			"module", "card-network/gateway-registry",
			"layer", "application",
			"gateway_id", gatewayID,
		)
	}
	return toggled, nil
}

func (s Service) ListGateways(ctx context.Context) ([]ports.Gateway, error) {
	return s.Repo.ListGateways(ctx)
}

func (s Service) GetGateway(ctx context.Context, gatewayID int64) (ports.Gateway, error) {
	return s.Repo.GetGateway(ctx, gatewayID)
}

// CheckCard is the metered consumption path: resolve the gateway, debit one
// credit atomically, then invoke the gated external check. When the debit is
// refused nothing is attempted. A checker failure after the debit is
// reported as-is; the debit stands.
func (s Service) CheckCard(ctx context.Context, gatewayID int64, accountID int64, card string) (ports.CardCheckResult, int64, error) {
	if strings.TrimSpace(card) == "" {
		return ports.CardCheckResult{}, 0, domainerrors.ErrInvalidCardInput
	}

	gateway, err := s.Repo.GetGateway(ctx, gatewayID)
	if err != nil {
		return ports.CardCheckResult{}, 0, err
	}
	if !gateway.Active {
		return ports.CardCheckResult{}, 0, domainerrors.ErrGatewayInactive
	}

	outcome, err := s.Ledger.TryConsume(ctx, accountID, 1)
	if err != nil {
		return ports.CardCheckResult{}, 0, err
	}

	result, err := s.Checker.Check(ctx, ports.CardCheckRequest{
		Gateway: gateway,
		Card:    card,
	})
	if err != nil {
		resolveLogger(s.Logger).Error("card check failed after debit",
			"event", "gateway_check_failed",
			"module", "card-network/gateway-registry",
			"layer", "application",
			"gateway_id", gatewayID,
			"account_id", accountID,
			"error", err.Error(),
		)
		return ports.CardCheckResult{}, outcome.Remaining, fmt.Errorf("%w: %v", domainerrors.ErrCheckerUnavailable, err)
	}

	resolveLogger(s.Logger).Debug("card check completed",
		"event", "gateway_check_completed",
		"module", "card-network/gateway-registry",
		"layer", "application",
		"gateway_id", gatewayID,
		"account_id", accountID,
		"status", result.Status,
		"remaining", outcome.Remaining,
	)
	return result, outcome.Remaining, nil
}
