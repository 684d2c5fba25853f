package botserver

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Poller drives the operator channel: long-poll for updates, dispatch each
// command, send the reply back to the originating chat.
type Poller struct {
	Client             *Client
	Dispatcher         Dispatcher
	Logger             *slog.Logger
	PollTimeoutSeconds int
}

func (p *Poller) Run(ctx context.Context) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := p.PollTimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	logger.Info("bot poller starting",
		"event", "bot_poller_starting",
		"module", "internal/platform/botserver",
		"layer", "platform",
		"poll_timeout_seconds", timeout,
	)

	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := p.Client.GetUpdates(ctx, offset, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("poll failed",
				"event", "bot_poll_failed",
				"module", "internal/platform/botserver",
				"layer", "platform",
				"error", err.Error(),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
			}
			continue
		}

		group := new(errgroup.Group)
		group.SetLimit(4)
		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			message := update.Message
			if message == nil || message.From == nil || message.Text == "" {
				continue
			}
			group.Go(func() error {
				reply := p.Dispatcher.HandleCommand(ctx, message.From.ID, message.Text)
				if reply == "" {
					return nil
				}
				if err := p.Client.SendMessage(ctx, message.Chat.ID, reply); err != nil {
					logger.Warn("reply failed",
						"event", "bot_reply_failed",
						"module", "internal/platform/botserver",
						"layer", "platform",
						"chat_id", message.Chat.ID,
						"error", err.Error(),
					)
				}
				return nil
			})
		}
		_ = group.Wait()
	}
}
