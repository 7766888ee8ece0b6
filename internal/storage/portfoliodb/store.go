// Package portfoliodb implements PortfolioStore using BadgerHold.
package portfoliodb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/interfaces"
	"github.com/mfabbri/folio/internal/models"
)

// Store implements interfaces.PortfolioStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new portfolio library store backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open library at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Portfolio library opened")
	return &Store{db: db, logger: logger}, nil
}

// List returns all saved portfolios, most recently saved first.
func (s *Store) List(_ context.Context) ([]*models.SavedPortfolio, error) {
	var all []models.SavedPortfolio
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	result := make([]*models.SavedPortfolio, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}

// Append stores a portfolio under a freshly generated id and returns it.
func (s *Store) Append(_ context.Context, p *models.SavedPortfolio) (string, error) {
	p.ID = uuid.New().String()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if err := s.db.Insert(p.ID, p); err != nil {
		return "", fmt.Errorf("failed to save portfolio: %w", err)
	}
	s.logger.Debug().Str("id", p.ID).Str("title", p.Result.StrategyTitle).Msg("Portfolio saved")
	return p.ID, nil
}

// Get retrieves a saved portfolio by id.
func (s *Store) Get(_ context.Context, id string) (*models.SavedPortfolio, error) {
	var p models.SavedPortfolio
	if err := s.db.Get(id, &p); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("portfolio '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get portfolio '%s': %w", id, err)
	}
	return &p, nil
}

// Delete removes a portfolio by id. Deleting an absent id is a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.SavedPortfolio{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete portfolio '%s': %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements PortfolioStore
var _ interfaces.PortfolioStore = (*Store)(nil)
