package httpadapter

import (
	"context"
	"log/slog"

	"keygate/contexts/card-network/gateway-registry/application"
	httptransport "keygate/contexts/card-network/gateway-registry/transport/http"
)

// Handler maps HTTP DTOs to gateway-registry use cases.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListGatewaysHandler(ctx context.Context) (httptransport.ListGatewaysResponse, error) {
	gateways, err := h.Service.ListGateways(ctx)
	if err != nil {
		return httptransport.ListGatewaysResponse{}, err
	}
	items := make([]httptransport.GatewayResponse, 0, len(gateways))
	for _, gateway := range gateways {
		items = append(items, httptransport.GatewayResponse{
			ID:       gateway.ID,
			Name:     gateway.Name,
			Endpoint: gateway.Endpoint,
			Active:   gateway.Active,
		})
	}
	return httptransport.ListGatewaysResponse{Gateways: items}, nil
}

func (h Handler) CheckCardHandler(
	ctx context.Context,
	gatewayID int64,
	request httptransport.CheckCardRequest,
) (httptransport.CheckCardResponse, error) {
	result, remaining, err := h.Service.CheckCard(ctx, gatewayID, request.AccountID, request.Card)
	if err != nil {
		return httptransport.CheckCardResponse{}, err
	}
	return httptransport.CheckCardResponse{
		Emoji:            result.Emoji,
		Status:           result.Status,
		Msg:              result.Msg,
		RemainingCredits: remaining,
	}, nil
}
