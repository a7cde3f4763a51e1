// README: LLM completion contract used by the chat module.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no completion backend is configured
// (missing API key). Callers degrade to a fixed reply instead of failing
// the turn.
var ErrUnavailable = errors.New("ai: completion backend unavailable")

// Client sends one composed context string to the completion backend and
// returns raw completion text. No schema is enforced at this boundary; the
// chat parser recovers all structure.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
