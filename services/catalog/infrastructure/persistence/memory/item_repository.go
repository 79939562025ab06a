// Package memory is an in-process ItemRepository backing the service, route
// and worker tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
	"github.com/ghuser/storecatalog/services/catalog/domain/repositories"
)

type record struct {
	item *models.Item
	seq  uint64
}

// ItemRepository implements repositories.ItemRepository in memory.
// Names are unique, matching the database's unique index.
type ItemRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]record
	byName map[models.ItemName]uuid.UUID
	seq    uint64
	now    func() time.Time
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an empty repository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		byID:   make(map[uuid.UUID]record),
		byName: make(map[models.ItemName]uuid.UUID),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *ItemRepository) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[item.Name]; taken {
		return nil, itemdomain.ErrItemAlreadyExists
	}

	stored := item.Clone()
	stored.ID = uuid.New()
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt

	r.seq++
	r.byID[stored.ID] = record{item: stored, seq: r.seq}
	r.byName[stored.Name] = stored.ID
	return stored.Clone(), nil
}

func (r *ItemRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return rec.item.Clone(), nil
}

func (r *ItemRepository) ExistsByName(_ context.Context, name models.ItemName) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok, nil
}

func (r *ItemRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *ItemRepository) Update(_ context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[item.ID]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	if owner, taken := r.byName[item.Name]; taken && owner != item.ID {
		return nil, itemdomain.ErrItemAlreadyExists
	}

	stored := item.Clone()
	stored.CreatedAt = rec.item.CreatedAt
	stored.UpdatedAt = r.now()

	delete(r.byName, rec.item.Name)
	r.byName[stored.Name] = stored.ID
	r.byID[stored.ID] = record{item: stored, seq: rec.seq}
	return stored.Clone(), nil
}

func (r *ItemRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return itemdomain.ErrItemNotFound
	}
	delete(r.byID, id)
	delete(r.byName, rec.item.Name)
	return nil
}

func (r *ItemRepository) ListAll(_ context.Context) ([]*models.Item, error) {
	return r.filter(func(*models.Item) bool { return true }), nil
}

func (r *ItemRepository) List(_ context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	all := r.filter(func(*models.Item) bool { return true })
	total := len(all)

	start := min(max(opts.Offset, 0), total)
	end := total
	if opts.Limit > 0 {
		end = min(start+opts.Limit, total)
	}
	return all[start:end], total, nil
}

func (r *ItemRepository) FindByNameContaining(_ context.Context, fragment string) ([]*models.Item, error) {
	needle := strings.ToLower(fragment)
	return r.filter(func(it *models.Item) bool {
		return strings.Contains(strings.ToLower(it.Name.String()), needle)
	}), nil
}

func (r *ItemRepository) FindByPriceRange(_ context.Context, lo, hi decimal.Decimal) ([]*models.Item, error) {
	return r.filter(func(it *models.Item) bool {
		return inRange(it.Price.Decimal(), lo, hi)
	}), nil
}

func (r *ItemRepository) FindByNameAndPriceRange(_ context.Context, name string, lo, hi decimal.Decimal) ([]*models.Item, error) {
	return r.filter(func(it *models.Item) bool {
		return it.Name.String() == name && inRange(it.Price.Decimal(), lo, hi)
	}), nil
}

func inRange(p, lo, hi decimal.Decimal) bool {
	return p.GreaterThanOrEqual(lo) && p.LessThanOrEqual(hi)
}

// filter returns clones of matching items in creation order.
func (r *ItemRepository) filter(keep func(*models.Item) bool) []*models.Item {
	r.mu.RLock()
	recs := make([]record, 0, len(r.byID))
	for _, rec := range r.byID {
		if keep(rec.item) {
			recs = append(recs, rec)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(recs, func(a, b record) int {
		if a.seq < b.seq {
			return -1
		}
		if a.seq > b.seq {
			return 1
		}
		return 0
	})

	out := make([]*models.Item, len(recs))
	for i, rec := range recs {
		out[i] = rec.item.Clone()
	}
	return out
}
