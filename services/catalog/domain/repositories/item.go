package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/storecatalog/services/catalog/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations map a missing record to ErrItemNotFound and a name collision
// to ErrItemAlreadyExists. Multi-item results are ordered by creation time.
type ItemRepository interface {
	// Create stores a new item and returns it with ID and timestamps assigned.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ExistsByName(ctx context.Context, name models.ItemName) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Update writes every mutable field of an existing item and returns the stored row.
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error

	ListAll(ctx context.Context) ([]*models.Item, error)

	// List retrieves a page of items and the total count ignoring pagination.
	List(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	// FindByNameContaining matches a case-insensitive substring of the name.
	FindByNameContaining(ctx context.Context, fragment string) ([]*models.Item, error)
	// FindByPriceRange matches min <= price <= max.
	FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*models.Item, error)
	// FindByNameAndPriceRange matches the exact name with min <= price <= max.
	FindByNameAndPriceRange(ctx context.Context, name string, min, max decimal.Decimal) ([]*models.Item, error)
}
