package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/storecatalog/pkg/database"
	"github.com/ghuser/storecatalog/pkg/events"
	itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"
	domainevents "github.com/ghuser/storecatalog/services/catalog/domain/events"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
	"github.com/ghuser/storecatalog/services/catalog/domain/repositories"
	"github.com/ghuser/storecatalog/services/catalog/infrastructure/persistence/postgres/db"
)

const (
	uniqueViolation = "23505"
	eventVersion    = 1
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
	now func() time.Time
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. Writes publish their domain event in the same transaction.
// A nil bus disables publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{
		db:  database,
		bus: bus,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new Item with a fresh ID and publishes ItemCreatedEvent.
// Returns ErrItemAlreadyExists on a name collision.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	var stored *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			ID:          uuid.New(),
			Name:        item.Name.String(),
			Price:       item.Price.Decimal(),
			Description: item.Description,
			CreatedAt:   r.now(),
		})
		if err != nil {
			return mapWriteError("insert item", err)
		}
		stored = rowToItem(row)

		return r.publish(ctx, tx, domainevents.TopicItemCreated, func(eventID uuid.UUID) any {
			return domainevents.ItemCreatedEvent{
				EventID:     eventID,
				Version:     eventVersion,
				ItemID:      stored.ID,
				Name:        stored.Name.String(),
				Price:       stored.Price.String(),
				Description: stored.Description,
				OccurredAt:  stored.CreatedAt,
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetByID retrieves an Item. Returns ErrItemNotFound if absent.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

func (r *ItemRepository) ExistsByName(ctx context.Context, name models.ItemName) (bool, error) {
	exists, err := db.New(r.db.DB()).ItemNameExists(ctx, name.String())
	if err != nil {
		return false, fmt.Errorf("check item name: %w", err)
	}
	return exists, nil
}

func (r *ItemRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := db.New(r.db.DB()).ItemExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// Update writes name, price and description, refreshes updated_at and
// publishes ItemUpdatedEvent.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	var stored *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateItem(ctx, db.UpdateItemParams{
			ID:          item.ID,
			Name:        item.Name.String(),
			Price:       item.Price.Decimal(),
			Description: item.Description,
			UpdatedAt:   r.now(),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return itemdomain.ErrItemNotFound
			}
			return mapWriteError("update item", err)
		}
		stored = rowToItem(row)

		return r.publish(ctx, tx, domainevents.TopicItemUpdated, func(eventID uuid.UUID) any {
			return domainevents.ItemUpdatedEvent{
				EventID:     eventID,
				Version:     eventVersion,
				ItemID:      stored.ID,
				Name:        stored.Name.String(),
				Price:       stored.Price.String(),
				Description: stored.Description,
				OccurredAt:  stored.UpdatedAt,
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteByID removes an item and publishes ItemDeletedEvent.
// Returns ErrItemNotFound when no row was deleted.
func (r *ItemRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).DeleteItem(ctx, id)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if n == 0 {
			return itemdomain.ErrItemNotFound
		}

		return r.publish(ctx, tx, domainevents.TopicItemDeleted, func(eventID uuid.UUID) any {
			return domainevents.ItemDeletedEvent{
				EventID:    eventID,
				Version:    eventVersion,
				ItemID:     id,
				OccurredAt: r.now(),
			}
		})
	})
}

func (r *ItemRepository) ListAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// List retrieves a page of items and the total count. A non-positive Limit
// returns every item from Offset on.
func (r *ItemRepository) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	q := db.New(r.db.DB())

	total, err := q.CountItems(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = int(total)
	}
	rows, err := q.ListItemsPage(ctx, db.ListItemsPageParams{
		Limit:  clampInt32(limit),
		Offset: clampInt32(max(opts.Offset, 0)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), int(total), nil
}

func (r *ItemRepository) FindByNameContaining(ctx context.Context, fragment string) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).FindItemsByNameContaining(ctx, escapeLike(fragment))
	if err != nil {
		return nil, fmt.Errorf("search items by name: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *ItemRepository) FindByPriceRange(ctx context.Context, lo, hi decimal.Decimal) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).FindItemsByPriceRange(ctx, db.FindItemsByPriceRangeParams{
		MinPrice: lo,
		MaxPrice: hi,
	})
	if err != nil {
		return nil, fmt.Errorf("search items by price: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *ItemRepository) FindByNameAndPriceRange(ctx context.Context, name string, lo, hi decimal.Decimal) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).FindItemsByNameAndPriceRange(ctx, db.FindItemsByNameAndPriceRangeParams{
		Name:     name,
		MinPrice: lo,
		MaxPrice: hi,
	})
	if err != nil {
		return nil, fmt.Errorf("search items by name and price: %w", err)
	}
	return rowsToItems(rows), nil
}

// publish writes an outbox message inside tx. build receives the event id.
func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, build func(uuid.UUID) any) error {
	if r.bus == nil {
		return nil
	}
	eventID := uuid.New()
	if err := r.bus.PublishInTx(ctx, tx, topic, eventID, eventVersion, build(eventID)); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return itemdomain.ErrItemAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes fragment match literally inside an ILIKE pattern.
func escapeLike(fragment string) string {
	return likeEscaper.Replace(fragment)
}

// rowToItem maps a db.CatalogItem to a domain models.Item.
func rowToItem(row db.CatalogItem) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Name:        models.ItemName(row.Name),
		Price:       models.RestorePrice(row.Price),
		Description: row.Description,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

func rowsToItems(rows []db.CatalogItem) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}

// clampInt32 saturates n into the int32 range used by LIMIT and OFFSET params.
func clampInt32(n int) int32 {
	return int32(min(max(n, math.MinInt32), math.MaxInt32))
}
