package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string

	// PostgresDSN selects the durable account/gateway/news backend; when
	// empty the API process runs on the in-memory system of record.
	PostgresDSN string

	// RosterPath is the embedded SQLite file holding the admin roster.
	RosterPath string

	// BotToken authenticates the operator command channel. Required by the
	// bot process, unused by the API process.
	BotToken string

	// OwnerIDs is the fixed owner set. Owners are configured, never
	// granted or revoked at runtime.
	OwnerIDs []int64

	BotPollTimeoutSeconds int
	SeedDemoData          bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "keygate"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	rosterPath := os.Getenv("ROSTER_SQLITE_PATH")
	if rosterPath == "" {
		rosterPath = "./data/roster.db"
	}

	var owners []int64
	for _, value := range strings.Split(os.Getenv("OWNER_IDS"), ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		owners = append(owners, id)
	}

	pollTimeout := 30
	if raw := strings.TrimSpace(os.Getenv("BOT_POLL_TIMEOUT")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			pollTimeout = parsed
		}
	}

	return Config{
		ServiceName:           service,
		HTTPPort:              port,
		PostgresDSN:           os.Getenv("POSTGRES_DSN"),
		RosterPath:            rosterPath,
		BotToken:              os.Getenv("BOT_TOKEN"),
		OwnerIDs:              owners,
		BotPollTimeoutSeconds: pollTimeout,
		SeedDemoData:          envBool("SEED_DEMO_DATA", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
