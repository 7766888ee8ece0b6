package interfaces

import (
	"context"

	"github.com/mfabbri/folio/internal/models"
)

// PortfolioStore persists the saved-portfolio library.
type PortfolioStore interface {
	// List returns all saved portfolios, most recently saved first.
	List(ctx context.Context) ([]*models.SavedPortfolio, error)

	// Append stores a portfolio under a freshly generated id and returns it.
	Append(ctx context.Context, p *models.SavedPortfolio) (string, error)

	// Get retrieves a saved portfolio by id.
	Get(ctx context.Context, id string) (*models.SavedPortfolio, error)

	// Delete removes a portfolio by id. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	Close() error
}
