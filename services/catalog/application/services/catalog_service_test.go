package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcache "github.com/ghuser/storecatalog/pkg/cache"
	"github.com/ghuser/storecatalog/pkg/logger"
	itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"
	"github.com/ghuser/storecatalog/services/catalog/domain/gateways"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
	"github.com/ghuser/storecatalog/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/storecatalog/services/catalog/domain/services"
	"github.com/ghuser/storecatalog/services/catalog/infrastructure/persistence/memory"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Broadcast(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type mapCache struct {
	mu    sync.Mutex
	items map[uuid.UUID]*pkgcache.CachedItem
	gets  int
	hits  int
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[uuid.UUID]*pkgcache.CachedItem)}
}

func (c *mapCache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	it, ok := c.items[id]
	if !ok {
		return nil, redis.Nil
	}
	c.hits++
	cp := *it
	return &cp, nil
}

func (c *mapCache) Set(_ context.Context, item *pkgcache.CachedItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *item
	c.items[item.ID] = &cp
	return nil
}

func (c *mapCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

type fixture struct {
	svc      *CatalogService
	repo     *memory.ItemRepository
	gen      *fakeGenerator
	notifier *recordingNotifier
	cache    *mapCache
}

func newFixture() *fixture {
	f := &fixture{
		repo:     memory.NewItemRepository(),
		gen:      &fakeGenerator{text: "A generated description"},
		notifier: &recordingNotifier{},
		cache:    newMapCache(),
	}
	f.svc = NewCatalogService(f.repo, f.gen, logger.Nop(), WithCache(f.cache), WithNotifier(f.notifier))
	return f
}

func candidate(name, price, description string) models.ItemCandidate {
	return models.ItemCandidate{Name: name, Price: decimal.RequireFromString(price), Description: description}
}

func (f *fixture) add(t *testing.T, name, price string) *models.Item {
	t.Helper()
	item, err := f.svc.AddItem(context.Background(), candidate(name, price, ""))
	require.NoError(t, err)
	return item
}

func TestAddItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	item, err := f.svc.AddItem(ctx, candidate("Sample Widget", "19.99", "blue"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "19.99", item.Price.String())
	assert.Equal(t, "blue", item.Description)
	assert.False(t, item.CreatedAt.IsZero())
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, 1, f.notifier.count())
}

func TestAddItem_DuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.add(t, "Widget", "1")

	_, err := f.svc.AddItem(ctx, candidate("Widget", "2", "other"))
	require.ErrorIs(t, err, itemdomain.ErrItemAlreadyExists)

	all, err := f.repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "1", all[0].Price.String())
}

func TestAddItem_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   models.ItemCandidate
	}{
		{"empty name", candidate("", "1", "")},
		{"negative price", candidate("Widget", "-0.01", "")},
		{"nul byte", candidate("Wid\x00get", "1", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.AddItem(context.Background(), tt.in)
			assert.ErrorIs(t, err, itemdomain.ErrInvalidInput)
		})
	}
}

func TestAddItem_ZeroPriceAllowed(t *testing.T) {
	f := newFixture()
	item := f.add(t, "Freebie", "0")
	assert.True(t, item.Price.Decimal().IsZero())
}

func TestAddItem_AcceptsAnyNonEmptyName(t *testing.T) {
	names := []string{"Sample  Widget", " Sample", "Sample ", "Tab\tName", "   "}
	f := newFixture()
	for _, name := range names {
		item, err := f.svc.AddItem(context.Background(), candidate(name, "1", ""))
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, models.ItemName(name), item.Name)
	}
}

func TestAddItemWithGeneratedDescription(t *testing.T) {
	f := newFixture()

	item, err := f.svc.AddItemWithGeneratedDescription(context.Background(), candidate("Lamp", "12.50", "ignored"))
	require.NoError(t, err)

	assert.Equal(t, "A generated description", item.Description)
	assert.Equal(t, []string{"Generate a compelling description for a product named Lamp"}, f.gen.prompts)
}

func TestAddItemWithGeneratedDescription_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service error", &gateways.GenerationError{Reason: "quota exceeded"}, "Error from text service: quota exceeded"},
		{"unexpected format", gateways.ErrUnexpectedResponse, domainsvcs.FallbackUnexpectedResponse},
		{"network", errors.New("dial tcp: connection refused"), domainsvcs.FallbackNetwork},
		{"interrupted", context.DeadlineExceeded, domainsvcs.FallbackInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.gen.err = tt.err

			item, err := f.svc.AddItemWithGeneratedDescription(context.Background(), candidate("Lamp", "12.50", ""))
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.Description)

			stored, err := f.repo.GetByID(context.Background(), item.ID)
			require.NoError(t, err)
			assert.NotEmpty(t, stored.Description)
		})
	}
}

func TestAddItemWithGeneratedDescription_DuplicateSkipsGeneration(t *testing.T) {
	f := newFixture()
	f.add(t, "Lamp", "1")

	_, err := f.svc.AddItemWithGeneratedDescription(context.Background(), candidate("Lamp", "2", ""))
	require.ErrorIs(t, err, itemdomain.ErrItemAlreadyExists)
	assert.Empty(t, f.gen.prompts)
}

func TestFindItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	added := f.add(t, "Widget", "19.99")

	got, err := f.svc.FindItem(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)
	assert.Equal(t, 1, f.cache.hits, "AddItem warms the cache")

	_, err = f.svc.FindItem(ctx, uuid.New())
	assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
}

func TestFetchItem_AnnouncesLookup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	added := f.add(t, "Widget", "19.99")
	f.notifier.messages = nil

	got, err := f.svc.FetchItem(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, []string{
		"Received request to fetch item " + added.ID.String(),
		"Item found: " + added.ID.String(),
	}, f.notifier.messages)

	f.notifier.messages = nil
	missing := uuid.New()
	_, err = f.svc.FetchItem(ctx, missing)
	require.ErrorIs(t, err, itemdomain.ErrItemNotFound)
	assert.Equal(t, []string{"Received request to fetch item " + missing.String()}, f.notifier.messages)
}

func TestFindItem_ReadThrough(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	added := f.add(t, "Widget", "5")
	require.NoError(t, f.cache.Delete(ctx, added.ID))

	_, err := f.svc.FindItem(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.hits)

	_, err = f.svc.FindItem(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
}

func TestFindItem_UnreadableCacheEntryFallsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	added := f.add(t, "Widget", "5")
	require.NoError(t, f.cache.Set(ctx, &pkgcache.CachedItem{ID: added.ID, Price: "not-a-number"}))

	got, err := f.svc.FindItem(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemName("Widget"), got.Name)
}

func TestChangePrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	added := f.add(t, "Widget", "10")

	got, err := f.svc.ChangePrice(ctx, added.ID, decimal.RequireFromString("12.34"))
	require.NoError(t, err)

	assert.Equal(t, "12.34", got.Price.String())
	assert.Equal(t, added.Name, got.Name)
	assert.Equal(t, added.Description, got.Description)
	assert.Equal(t, added.CreatedAt, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(added.UpdatedAt))

	found, err := f.svc.FindItem(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.34", found.Price.String(), "stale cache entry must be evicted")

	_, err = f.svc.ChangePrice(ctx, uuid.New(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)

	_, err = f.svc.ChangePrice(ctx, added.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, itemdomain.ErrInvalidInput)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()

	t.Run("name only", func(t *testing.T) {
		f := newFixture()
		added, err := f.svc.AddItem(ctx, candidate("Widget", "10", "keep"))
		require.NoError(t, err)

		got, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{"name": "X"})
		require.NoError(t, err)
		assert.Equal(t, models.ItemName("X"), got.Name)
		assert.Equal(t, "keep", got.Description)
		assert.Equal(t, "10", got.Price.String())
	})

	t.Run("name keeps inner whitespace", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "10")

		got, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{"name": "Two  Spaces"})
		require.NoError(t, err)
		assert.Equal(t, models.ItemName("Two  Spaces"), got.Name)
	})

	t.Run("all fields with numeric string price", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "10")

		got, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{
			"name":        "Gizmo",
			"description": "",
			"price":       "7.25",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ItemName("Gizmo"), got.Name)
		assert.Empty(t, got.Description)
		assert.Equal(t, "7.25", got.Price.String())
	})

	t.Run("unknown field leaves item untouched", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "10")

		_, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{"name": "Changed", "bogus": 1})
		require.ErrorIs(t, err, itemdomain.ErrInvalidField)

		stored, err := f.repo.GetByID(ctx, added.ID)
		require.NoError(t, err)
		assert.Equal(t, added, stored)
	})

	t.Run("bad value", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "10")

		_, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{"price": "ten"})
		require.ErrorIs(t, err, itemdomain.ErrInvalidValue)

		_, err = f.svc.UpdatePartial(ctx, added.ID, map[string]any{"name": 42})
		require.ErrorIs(t, err, itemdomain.ErrInvalidValue)
	})

	t.Run("missing item", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdatePartial(ctx, uuid.New(), map[string]any{"name": "X"})
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
	})

	t.Run("name taken by another item", func(t *testing.T) {
		f := newFixture()
		f.add(t, "Taken", "1")
		added := f.add(t, "Widget", "10")

		_, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{"name": "Taken"})
		assert.ErrorIs(t, err, itemdomain.ErrItemAlreadyExists)
	})

	t.Run("empty change set writes nothing", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "10")
		before := f.notifier.count()

		got, err := f.svc.UpdatePartial(ctx, added.ID, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, added.UpdatedAt, got.UpdatedAt)
		assert.Equal(t, before, f.notifier.count())
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("user is refused before existence is checked", func(t *testing.T) {
		f := newFixture()
		err := f.svc.DeleteItem(ctx, uuid.New(), domainsvcs.RoleUser)
		assert.ErrorIs(t, err, itemdomain.ErrUnauthorized)
	})

	t.Run("user cannot delete an existing item", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "1")
		require.ErrorIs(t, f.svc.DeleteItem(ctx, added.ID, domainsvcs.RoleUser), itemdomain.ErrUnauthorized)

		ok, err := f.repo.ExistsByID(ctx, added.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("role match is exact", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "1")
		assert.ErrorIs(t, f.svc.DeleteItem(ctx, added.ID, "admin"), itemdomain.ErrUnauthorized)
		assert.ErrorIs(t, f.svc.DeleteItem(ctx, added.ID, ""), itemdomain.ErrUnauthorized)
	})

	t.Run("admin on missing id", func(t *testing.T) {
		f := newFixture()
		assert.ErrorIs(t, f.svc.DeleteItem(ctx, uuid.New(), domainsvcs.RoleAdmin), itemdomain.ErrItemNotFound)
	})

	t.Run("admin deletes", func(t *testing.T) {
		f := newFixture()
		added := f.add(t, "Widget", "1")
		require.NoError(t, f.svc.DeleteItem(ctx, added.ID, domainsvcs.RoleAdmin))

		_, err := f.svc.FindItem(ctx, added.ID)
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound, "cache must not resurrect a deleted item")
	})
}

func ptr[T any](v T) *T { return &v }

func TestSearchItems(t *testing.T) {
	ctx := context.Background()
	dec := decimal.RequireFromString

	t.Run("exact name with range", func(t *testing.T) {
		f := newFixture()
		sample := f.add(t, "Sample", "19.99")

		got, err := f.svc.SearchItems(ctx, models.SearchFilter{Name: ptr("Sample"), MinPrice: ptr(dec("10")), MaxPrice: ptr(dec("30"))})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, sample.ID, got[0].ID)
	})

	t.Run("substring does not satisfy the exact branch", func(t *testing.T) {
		f := newFixture()
		f.add(t, "Sample Widget", "19.99")

		got, err := f.svc.SearchItems(ctx, models.SearchFilter{Name: ptr("Sample"), MinPrice: ptr(dec("10")), MaxPrice: ptr(dec("30"))})
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = f.svc.SearchItems(ctx, models.SearchFilter{Name: ptr("sample")})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("name with one bound uses substring", func(t *testing.T) {
		f := newFixture()
		f.add(t, "Sample Widget", "99")

		got, err := f.svc.SearchItems(ctx, models.SearchFilter{Name: ptr("Widget"), MinPrice: ptr(dec("1000"))})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("price range", func(t *testing.T) {
		f := newFixture()
		f.add(t, "a", "5")
		mid := f.add(t, "b", "15")
		f.add(t, "c", "25")

		got, err := f.svc.SearchItems(ctx, models.SearchFilter{MinPrice: ptr(dec("10")), MaxPrice: ptr(dec("15"))})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, mid.ID, got[0].ID)
	})

	t.Run("no filters and a single bound return everything", func(t *testing.T) {
		f := newFixture()
		f.add(t, "a", "5")
		f.add(t, "b", "15")

		got, err := f.svc.SearchItems(ctx, models.SearchFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = f.svc.SearchItems(ctx, models.SearchFilter{MaxPrice: ptr(dec("1"))})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestListItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		f.add(t, n, "1")
	}

	all, total, err := f.svc.ListItems(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, total)

	page, total, err := f.svc.ListItems(ctx, &repositories.QueryOpts{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, 3, total)
}

func TestGenerateText(t *testing.T) {
	f := newFixture()
	assert.Equal(t, "A generated description", f.svc.GenerateText(context.Background(), "hello"))

	f.gen.err = &gateways.GenerationError{Reason: "bad key"}
	assert.Equal(t, "Error from text service: bad key", f.svc.GenerateText(context.Background(), "hello"))
}

func TestNewCatalogService_DefaultsToLogNotifier(t *testing.T) {
	svc := NewCatalogService(memory.NewItemRepository(), &fakeGenerator{}, logger.Nop())
	_, err := svc.AddItem(context.Background(), candidate("Widget", "1", ""))
	assert.NoError(t, err)
}
