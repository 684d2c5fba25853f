package mockcheck

import (
	"context"
	"math/rand"
	"sync"

	"keygate/contexts/card-network/gateway-registry/ports"
)

var verdicts = []ports.CardCheckResult{
	{Emoji: "✅", Status: ports.VerdictApproved, Msg: "Card approved!"},
	{Emoji: "❌", Status: ports.VerdictDeclined, Msg: "Card declined - insufficient funds"},
	{Emoji: "❌", Status: ports.VerdictDeclined, Msg: "Card declined - incorrect CVV"},
}

// Checker is a stand-in for the real payment-network call: it returns a
// random canned verdict. The core only cares that a credit was debited
// before this ran; the verdict itself is opaque.
type Checker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewChecker(seed int64) *Checker {
	return &Checker{rng: rand.New(rand.NewSource(seed))}
}

func (c *Checker) Check(_ context.Context, _ ports.CardCheckRequest) (ports.CardCheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return verdicts[c.rng.Intn(len(verdicts))], nil
}

var _ ports.CardChecker = (*Checker)(nil)
