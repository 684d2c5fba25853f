package ports

import "context"

const (
	VerdictApproved = "APPROVED"
	VerdictDeclined = "DECLINED"
)

// Gateway is one checkable resource in the catalog. Gateways are toggled,
// never deleted, so ids stay stable for the lifetime of the process.
type Gateway struct {
	ID       int64
	Name     string
	Endpoint string
	Active   bool
}

type Repository interface {
	AddGateway(ctx context.Context, name string, endpoint string) (Gateway, error)
	// ToggleGateway flips the active flag; an unknown id reports false
	// without an error, the caller decides the user-facing wording.
	ToggleGateway(ctx context.Context, gatewayID int64) (bool, error)
	ListGateways(ctx context.Context) ([]Gateway, error)
	GetGateway(ctx context.Context, gatewayID int64) (Gateway, error)
}

// CreditLedger is the slice of the account module this module may touch:
// the atomic check-and-debit. Wired to the account service in bootstrap.
type CreditLedger interface {
	TryConsume(ctx context.Context, accountID int64, cost int64) (ConsumeOutcome, error)
}

type ConsumeOutcome struct {
	Granted   bool
	Remaining int64
}

// CardCheckRequest carries the opaque payload for the gated external
// operation. The core never interprets the card value.
type CardCheckRequest struct {
	Gateway Gateway
	Card    string
}

type CardCheckResult struct {
	Status string
	Emoji  string
	Msg    string
}

// CardChecker is the gated external operation. It may be slow or fail; the
// debit has already happened by the time it runs, and refund-on-failure is
// the caller's policy, not this module's.
type CardChecker interface {
	Check(ctx context.Context, request CardCheckRequest) (CardCheckResult, error)
}
