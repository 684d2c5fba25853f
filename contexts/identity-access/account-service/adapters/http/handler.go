package httpadapter

import (
	"context"
	"log/slog"

	"keygate/contexts/identity-access/account-service/application"
	"keygate/contexts/identity-access/account-service/ports"
	httptransport "keygate/contexts/identity-access/account-service/transport/http"
)

// Handler maps HTTP DTOs to account-service use cases.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.AccountResponse, error) {
	account, err := h.Service.ValidateKey(ctx, request.AccessKey)
	if err != nil {
		// The key is a secret; log only the outcome.
		h.logger().Info("login rejected",
			"event", "account_login_rejected",
			"module", "identity-access/account-service",
			"layer", "transport",
		)
		return httptransport.AccountResponse{}, err
	}
	return accountResponse(account), nil
}

func (h Handler) GetAccountHandler(ctx context.Context, accountID int64) (httptransport.AccountResponse, error) {
	account, err := h.Service.GetAccount(ctx, accountID)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	return accountResponse(account), nil
}

func (h Handler) UpdatePreferencesHandler(
	ctx context.Context,
	accountID int64,
	request httptransport.UpdatePreferencesRequest,
) (httptransport.AccountResponse, error) {
	account, err := h.Service.UpdatePreferences(ctx, accountID, ports.PreferencesUpdate{
		ProxyHost: request.ProxyHost,
		ProxyPort: request.ProxyPort,
		ProxyUser: request.ProxyUser,
		ProxyPass: request.ProxyPass,
		Language:  request.Language,
	})
	if err != nil {
		h.logger().Error("preference update failed",
			"event", "account_preferences_update_failed",
			"module", "identity-access/account-service",
			"layer", "transport",
			"account_id", accountID,
			"error", err.Error(),
		)
		return httptransport.AccountResponse{}, err
	}
	return accountResponse(account), nil
}

func (h Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func accountResponse(account ports.Account) httptransport.AccountResponse {
	return httptransport.AccountResponse{
		ID:        account.ID,
		AccessKey: account.AccessKey,
		Credits:   account.Credits,
		ProxyHost: account.ProxyHost,
		ProxyPort: account.ProxyPort,
		ProxyUser: account.ProxyUser,
		ProxyPass: account.ProxyPass,
		Language:  account.Language,
	}
}
