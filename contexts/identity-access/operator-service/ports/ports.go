package ports

import "context"

// Tier is the privilege classification of a command-channel caller.
type Tier int

const (
	TierUnauthorized Tier = iota
	TierAdmin
	TierOwner
)

func (t Tier) String() string {
	switch t {
	case TierOwner:
		return "owner"
	case TierAdmin:
		return "admin"
	default:
		return "unauthorized"
	}
}

// AtLeast reports whether the tier grants the rights of the required tier.
// Owner inherits all admin rights.
func (t Tier) AtLeast(required Tier) bool {
	return t >= required
}

// RosterStore persists the mutable admin set. Save must complete before a
// roster mutation is acknowledged: an admin grant that is forgotten on
// restart is a security-relevant inconsistency, so persistence failures are
// surfaced, never swallowed.
type RosterStore interface {
	Load(ctx context.Context) ([]int64, error)
	Save(ctx context.Context, operatorIDs []int64) error
}
