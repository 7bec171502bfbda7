// Package ledger opens the engagement ledger selected by configuration.
package ledger

import (
	"fmt"

	"github.com/blackmichael/reshare-bot/internal/domain"
	"github.com/blackmichael/reshare-bot/internal/postgres"
	"github.com/blackmichael/reshare-bot/internal/sqlite"
)

// Ledger is an engagement repository owning a database handle.
type Ledger interface {
	domain.EngagementRepository
	Close() error
}

// Open returns the ledger for driver, or nil when driver is empty.
func Open(driver, databaseURL string) (Ledger, error) {
	switch driver {
	case "":
		return nil, nil
	case "sqlite":
		repo, err := sqlite.NewRepository(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite ledger: %w", err)
		}
		return repo, nil
	case "postgres":
		repo, err := postgres.NewRepository(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres ledger: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", driver)
	}
}

