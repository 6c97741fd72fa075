package store

import (
	"context"

	"synchrony/app/config"
	"synchrony/app/models"
)

// Store persists the entire project dataset as one document. Every
// mutation goes through a full Load, an in-memory change, and a full
// Save; there are no partial updates.
type Store interface {
	// Load reads the persisted dataset. A store with no data yet
	// returns an empty dataset, not an error.
	Load(ctx context.Context) (*models.Dataset, error)
	// Save writes the full dataset, replacing any prior contents.
	Save(ctx context.Context, dataset *models.Dataset) error
}

// New builds the store selected by the configuration and returns it
// together with a close function for its underlying resources.
func New(cfg *config.Config) (Store, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case config.BackendNeo4j:
		s, err := NewNeo4jStore(cfg.Neo4j)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return NewFileStore(cfg.DataFile), func(context.Context) error { return nil }, nil
	}
}
