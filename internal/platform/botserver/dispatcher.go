package botserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	gatewayapp "keygate/contexts/card-network/gateway-registry/application"
	newsapp "keygate/contexts/card-network/news-feed/application"
	accountapp "keygate/contexts/identity-access/account-service/application"
	accounterrors "keygate/contexts/identity-access/account-service/domain/errors"
	operatorapp "keygate/contexts/identity-access/operator-service/application"
	operatorerrors "keygate/contexts/identity-access/operator-service/domain/errors"
	operatorports "keygate/contexts/identity-access/operator-service/ports"
)

const (
	replyUnauthorized   = "You are not authorized to use this bot."
	replyUnknownCommand = "Unknown command. Send /start for the command list."
	replyOwnerOnly      = "Only an owner can manage admins."
)

// Dispatcher turns operator messages into use-case calls and reply text.
// Every command is gated on the roster before any service is touched.
type Dispatcher struct {
	Accounts  accountapp.Service
	Operators *operatorapp.Service
	Gateways  gatewayapp.Service
	News      newsapp.Service
	Logger    *slog.Logger
}

// HandleCommand returns the reply for one operator message. Unauthorized
// senders always get the same refusal, whatever they sent.
func (d Dispatcher) HandleCommand(ctx context.Context, operatorID int64, text string) string {
	if err := d.Operators.RequireAdmin(operatorID); err != nil {
		return replyUnauthorized
	}

	command, args := splitCommand(text)
	switch command {
	case "/start", "/help":
		return d.helpText(d.Operators.Classify(operatorID))
	case "/genkey":
		return d.handleGenKey(ctx)
	case "/revoke":
		return d.handleRevoke(ctx, args)
	case "/addnews":
		return d.handleAddNews(ctx, args)
	case "/addgateway":
		return d.handleAddGateway(ctx, args)
	case "/togglegateway":
		return d.handleToggleGateway(ctx, args)
	case "/addcredits":
		return d.handleAddCredits(ctx, args)
	case "/addadmin":
		return d.handleAddAdmin(ctx, operatorID, args)
	case "/removeadmin":
		return d.handleRemoveAdmin(ctx, operatorID, args)
	case "/admins":
		return d.handleListAdmins(operatorID)
	default:
		return replyUnknownCommand
	}
}

func (d Dispatcher) helpText(tier operatorports.Tier) string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	b.WriteString("/genkey - issue a new access key\n")
	b.WriteString("/revoke <key> - revoke an access key\n")
	b.WriteString("/addcredits <key> <amount> - adjust an account balance\n")
	b.WriteString("/addgateway <name> | <endpoint> - add a gateway\n")
	b.WriteString("/togglegateway <id> - enable or disable a gateway\n")
	b.WriteString("/addnews <title> | <content> - post an announcement")
	if tier.AtLeast(operatorports.TierOwner) {
		b.WriteString("\n/addadmin <id> - grant admin access\n")
		b.WriteString("/removeadmin <id> - revoke admin access\n")
		b.WriteString("/admins - list admins")
	}
	return b.String()
}

func (d Dispatcher) handleGenKey(ctx context.Context) string {
	account, err := d.Accounts.IssueKey(ctx)
	if err != nil {
		return d.failure("issue key", err)
	}
	return fmt.Sprintf("New key for account #%d:\n%s", account.ID, account.AccessKey)
}

func (d Dispatcher) handleRevoke(ctx context.Context, args string) string {
	key := strings.TrimSpace(args)
	if key == "" {
		return "Usage: /revoke <key>"
	}
	revoked, err := d.Accounts.RevokeKey(ctx, key)
	if err != nil {
		return d.failure("revoke key", err)
	}
	if !revoked {
		return "Key not found."
	}
	return "Key revoked."
}

func (d Dispatcher) handleAddNews(ctx context.Context, args string) string {
	title, content, ok := splitPipe(args)
	if !ok {
		return "Usage: /addnews <title> | <content>"
	}
	item, err := d.News.AddNews(ctx, title, content)
	if err != nil {
		return d.failure("add news", err)
	}
	return fmt.Sprintf("News posted: %s", item.Title)
}

func (d Dispatcher) handleAddGateway(ctx context.Context, args string) string {
	name, endpoint, ok := splitPipe(args)
	if !ok {
		return "Usage: /addgateway <name> | <endpoint>"
	}
	gateway, err := d.Gateways.AddGateway(ctx, name, endpoint)
	if err != nil {
		return d.failure("add gateway", err)
	}
	return fmt.Sprintf("Gateway #%d added: %s", gateway.ID, gateway.Name)
}

func (d Dispatcher) handleToggleGateway(ctx context.Context, args string) string {
	gatewayID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "Usage: /togglegateway <id>"
	}
	toggled, err := d.Gateways.ToggleGateway(ctx, gatewayID)
	if err != nil {
		return d.failure("toggle gateway", err)
	}
	if !toggled {
		return fmt.Sprintf("Gateway %d not found.", gatewayID)
	}
	gateway, err := d.Gateways.GetGateway(ctx, gatewayID)
	if err != nil {
		return d.failure("toggle gateway", err)
	}
	if gateway.Active {
		return fmt.Sprintf("Gateway #%d (%s) is now active.", gateway.ID, gateway.Name)
	}
	return fmt.Sprintf("Gateway #%d (%s) is now disabled.", gateway.ID, gateway.Name)
}

func (d Dispatcher) handleAddCredits(ctx context.Context, args string) string {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "Usage: /addcredits <key> <amount>"
	}
	amount, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || amount == 0 {
		return "Usage: /addcredits <key> <amount>"
	}

	account, err := d.Accounts.ValidateKey(ctx, fields[0])
	if err != nil {
		if errors.Is(err, accounterrors.ErrAccountNotFound) {
			return "Key not found."
		}
		return d.failure("add credits", err)
	}

	updated, err := d.Accounts.Credit(ctx, account.ID, amount)
	if err != nil {
		if errors.Is(err, accounterrors.ErrInsufficientCredits) {
			return "Balance cannot go below zero."
		}
		return d.failure("add credits", err)
	}
	return fmt.Sprintf("Account #%d balance is now %d.", updated.ID, updated.Credits)
}

func (d Dispatcher) handleAddAdmin(ctx context.Context, operatorID int64, args string) string {
	grantedID, err := d.Operators.AddAdmin(ctx, operatorID, strings.TrimSpace(args))
	if err != nil {
		switch {
		case errors.Is(err, operatorerrors.ErrNotOwner):
			return replyOwnerOnly
		case errors.Is(err, operatorerrors.ErrInvalidOperatorID):
			return "Usage: /addadmin <id>"
		case errors.Is(err, operatorerrors.ErrAlreadyAdmin):
			return "That operator is already an admin."
		default:
			return d.failure("add admin", err)
		}
	}
	return fmt.Sprintf("Operator %d is now an admin.", grantedID)
}

func (d Dispatcher) handleRemoveAdmin(ctx context.Context, operatorID int64, args string) string {
	removedID, err := d.Operators.RemoveAdmin(ctx, operatorID, strings.TrimSpace(args))
	if err != nil {
		switch {
		case errors.Is(err, operatorerrors.ErrNotOwner):
			return replyOwnerOnly
		case errors.Is(err, operatorerrors.ErrInvalidOperatorID):
			return "Usage: /removeadmin <id>"
		case errors.Is(err, operatorerrors.ErrOwnerImmutable):
			return "Owners cannot be removed."
		case errors.Is(err, operatorerrors.ErrNotAdmin):
			return "That operator is not an admin."
		default:
			return d.failure("remove admin", err)
		}
	}
	return fmt.Sprintf("Operator %d is no longer an admin.", removedID)
}

func (d Dispatcher) handleListAdmins(operatorID int64) string {
	admins, err := d.Operators.ListAdmins(operatorID)
	if err != nil {
		if errors.Is(err, operatorerrors.ErrNotOwner) {
			return replyOwnerOnly
		}
		return d.failure("list admins", err)
	}
	ids := make([]string, 0, len(admins))
	for _, id := range admins {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return "Admins: " + strings.Join(ids, ", ")
}

// failure logs the underlying error and keeps the reply generic; operator
// chat is not the place for internals.
func (d Dispatcher) failure(action string, err error) string {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("bot command failed",
		"event", "bot_command_failed",
		"module", "internal/platform/botserver",
		"layer", "platform",
		"action", action,
		"error", err.Error(),
	)
	return "Something went wrong, try again later."
}

func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	command, args, _ := strings.Cut(text, " ")
	// Telegram appends the bot name in group chats: /genkey@SomeBot.
	command, _, _ = strings.Cut(command, "@")
	return strings.ToLower(command), strings.TrimSpace(args)
}

func splitPipe(args string) (string, string, bool) {
	left, right, found := strings.Cut(args, "|")
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)
	if !found || left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}
