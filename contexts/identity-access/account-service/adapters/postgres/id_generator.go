package postgresadapter

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UUIDKeyGenerator implements ports.KeyGenerator using RFC 4122 UUID v4
// values with the dashes stripped: opaque, unguessable, no embedded meaning.
type UUIDKeyGenerator struct{}

func (UUIDKeyGenerator) NewKey(_ context.Context) (string, error) {
	return strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}
