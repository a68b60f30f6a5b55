package providers

import (
	"context"

	"github.com/brandlens/visibility-bot/internal/models"
)

// Client defines the contract for all AI answer engines the bot probes.
type Client interface {
	Name() models.Provider
	Ask(ctx context.Context, prompt string) (string, error)
	IsEnabled() bool
}
