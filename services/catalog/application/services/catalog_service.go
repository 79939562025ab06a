package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/storecatalog/pkg/cache"
	"github.com/ghuser/storecatalog/pkg/logger"
	itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"
	"github.com/ghuser/storecatalog/services/catalog/domain/gateways"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
	"github.com/ghuser/storecatalog/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/storecatalog/services/catalog/domain/services"
)

const instrumentationName = "github.com/ghuser/storecatalog/services/catalog"

// ItemCache is the read model the service keeps in front of the repository.
// *pkgcache.ItemCache satisfies it.
type ItemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogService owns the catalog business rules: creation, mutation,
// authorized deletion and search. Each operation does one storage read and at
// most one storage write. Event publishing happens in the repository (outbox).
type CatalogService struct {
	repo      repositories.ItemRepository
	cache     ItemCache
	generator gateways.TextGenerator
	notifier  gateways.Notifier
	log       logger.Logger

	tracer    trace.Tracer
	created   metric.Int64Counter
	deleted   metric.Int64Counter
	fallbacks metric.Int64Counter
}

// Option customizes a CatalogService.
type Option func(*CatalogService)

// WithCache enables the read-through item cache.
func WithCache(c ItemCache) Option {
	return func(s *CatalogService) { s.cache = c }
}

// WithNotifier sets where activity messages are broadcast.
func WithNotifier(n gateways.Notifier) Option {
	return func(s *CatalogService) { s.notifier = n }
}

// NewCatalogService returns a CatalogService. Without WithNotifier messages are
// only logged; without WithCache every read goes to the repository.
func NewCatalogService(repo repositories.ItemRepository, generator gateways.TextGenerator, log logger.Logger, opts ...Option) *CatalogService {
	s := &CatalogService{
		repo:      repo,
		generator: generator,
		notifier:  logNotifier{log: log},
		log:       log,
		tracer:    otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter(instrumentationName)
	s.created, _ = meter.Int64Counter("catalog.items.created",
		metric.WithDescription("Items added to the catalog"))
	s.deleted, _ = meter.Int64Counter("catalog.items.deleted",
		metric.WithDescription("Items removed from the catalog"))
	s.fallbacks, _ = meter.Int64Counter("catalog.description.fallbacks",
		metric.WithDescription("Generated descriptions replaced by a fallback text"))
	return s
}

// AddItem stores a new item. Any id or timestamps on the candidate are ignored.
// Returns ErrItemAlreadyExists when the name is taken and ErrInvalidInput when
// the candidate breaks a domain rule.
func (s *CatalogService) AddItem(ctx context.Context, candidate models.ItemCandidate) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddItem")
	defer func() { endSpan(span, err) }()

	draft, err := s.prepareNew(ctx, candidate)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, draft, false)
}

// AddItemWithGeneratedDescription behaves like AddItem but replaces the
// description with generated text. A generation failure stores a fallback
// description instead and the item is still created.
func (s *CatalogService) AddItemWithGeneratedDescription(ctx context.Context, candidate models.ItemCandidate) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddItemWithGeneratedDescription")
	defer func() { endSpan(span, err) }()

	draft, err := s.prepareNew(ctx, candidate)
	if err != nil {
		return nil, err
	}
	draft.Description = s.generate(ctx, domainsvcs.DescriptionPrompt(draft.Name))
	return s.create(ctx, draft, true)
}

// FindItem returns the item with id or ErrItemNotFound.
func (s *CatalogService) FindItem(ctx context.Context, id uuid.UUID) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.FindItem", trace.WithAttributes(attribute.String("item.id", id.String())))
	defer func() { endSpan(span, err) }()

	if cached, ok := s.fromCache(ctx, id); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	item, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	s.warmCache(ctx, item)
	return item, nil
}

// FetchItem is FindItem with the request and its outcome announced on the
// activity feed. It backs the AI-facing lookup route.
func (s *CatalogService) FetchItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	s.notifier.Broadcast(ctx, fmt.Sprintf("Received request to fetch item %s", id))
	item, err := s.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(ctx, fmt.Sprintf("Item found: %s", id))
	return item, nil
}

// ChangePrice sets a new price on an existing item.
func (s *CatalogService) ChangePrice(ctx context.Context, id uuid.UUID, newPrice decimal.Decimal) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ChangePrice", trace.WithAttributes(attribute.String("item.id", id.String())))
	defer func() { endSpan(span, err) }()

	price, err := models.NewPrice(newPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidInput, err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	current.Price = price

	item, err = s.save(ctx, current)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(ctx, fmt.Sprintf("Price of item %s changed to %s", item.ID, item.Price))
	return item, nil
}

// UpdatePartial applies changes (field name to raw value) to an existing item.
// Every key is checked before anything is written: an unknown key fails with
// ErrInvalidField and a value of the wrong shape with ErrInvalidValue.
// An empty change set returns the stored item without writing.
func (s *CatalogService) UpdatePartial(ctx context.Context, id uuid.UUID, changes map[string]any) (item *models.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdatePartial", trace.WithAttributes(attribute.String("item.id", id.String())))
	defer func() { endSpan(span, err) }()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	mutation, err := domainsvcs.ParseItemChanges(changes)
	if err != nil {
		return nil, err
	}
	if mutation.IsEmpty() {
		return current, nil
	}
	span.SetAttributes(attribute.StringSlice("item.fields", mutation.Fields()))

	mutation.ApplyTo(current)
	item, err = s.save(ctx, current)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(ctx, fmt.Sprintf("Item %s updated: %v", item.ID, mutation.Fields()))
	return item, nil
}

// DeleteItem removes an item. Only requesterRole "ADMIN" may delete, and the
// role is checked before the item is looked up, so a non-admin gets
// ErrUnauthorized even for an unknown id.
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID, requesterRole string) (err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteItem", trace.WithAttributes(
		attribute.String("item.id", id.String()),
		attribute.String("requester.role", requesterRole),
	))
	defer func() { endSpan(span, err) }()

	if err := domainsvcs.AuthorizeDeletion(requesterRole); err != nil {
		s.log.WarnContext(ctx, "item deletion refused", "item_id", id, "role", requesterRole)
		return err
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return itemdomain.ErrItemNotFound
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.evictCache(ctx, id)
	s.deleted.Add(ctx, 1)
	s.log.InfoContext(ctx, "item deleted", "item_id", id)
	s.notifier.Broadcast(ctx, fmt.Sprintf("Item %s deleted", id))
	return nil
}

// SearchItems resolves filter to one storage query; see domainsvcs.ResolveSearch.
func (s *CatalogService) SearchItems(ctx context.Context, filter models.SearchFilter) (items []*models.Item, err error) {
	strategy := domainsvcs.ResolveSearch(filter)
	ctx, span := s.tracer.Start(ctx, "CatalogService.SearchItems", trace.WithAttributes(
		attribute.String("search.strategy", strategy.String()),
	))
	defer func() { endSpan(span, err) }()

	switch strategy {
	case domainsvcs.SearchByNameAndPriceRange:
		items, err = s.repo.FindByNameAndPriceRange(ctx, *filter.Name, *filter.MinPrice, *filter.MaxPrice)
	case domainsvcs.SearchByNameContaining:
		items, err = s.repo.FindByNameContaining(ctx, *filter.Name)
	case domainsvcs.SearchByPriceRange:
		items, err = s.repo.FindByPriceRange(ctx, *filter.MinPrice, *filter.MaxPrice)
	default:
		items, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("search items (%s): %w", strategy, err)
	}
	span.SetAttributes(attribute.Int("search.results", len(items)))
	return items, nil
}

// ListItems returns a page of items and the total count. A nil opts returns
// every item.
func (s *CatalogService) ListItems(ctx context.Context, opts *repositories.QueryOpts) (items []*models.Item, total int, err error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListItems")
	defer func() { endSpan(span, err) }()

	if opts == nil {
		items, err = s.repo.ListAll(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("list items: %w", err)
		}
		return items, len(items), nil
	}

	items, total, err = s.repo.List(ctx, *opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// GenerateText passes prompt to the text generator. Failures come back as the
// same fallback texts used for descriptions, never as an error.
func (s *CatalogService) GenerateText(ctx context.Context, prompt string) string {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GenerateText")
	defer span.End()

	s.notifier.Broadcast(ctx, "Received text generation request")
	return s.generate(ctx, prompt)
}

// prepareNew validates a candidate and checks the name is free.
func (s *CatalogService) prepareNew(ctx context.Context, candidate models.ItemCandidate) (*models.Item, error) {
	name, err := models.NewItemName(candidate.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidInput, err)
	}
	price, err := models.NewPrice(candidate.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidInput, err)
	}

	draft := models.NewItem(name, price, candidate.Description)
	if err := domainsvcs.ValidateItemForCreation(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidInput, err)
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check item name: %w", err)
	}
	if exists {
		return nil, itemdomain.ErrItemAlreadyExists
	}
	return draft, nil
}

func (s *CatalogService) create(ctx context.Context, draft *models.Item, generated bool) (*models.Item, error) {
	item, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.created.Add(ctx, 1, metric.WithAttributes(attribute.Bool("generated_description", generated)))
	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "generated_description", generated)
	s.warmCache(ctx, item)
	if generated {
		s.notifier.Broadcast(ctx, fmt.Sprintf("Item %s added with generated description: %s", item.ID, item.Name))
	} else {
		s.notifier.Broadcast(ctx, fmt.Sprintf("Item %s added: %s", item.ID, item.Name))
	}
	return item, nil
}

func (s *CatalogService) save(ctx context.Context, item *models.Item) (*models.Item, error) {
	stored, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.evictCache(ctx, stored.ID)
	return stored, nil
}

// generate returns generated text, or the fallback text for the failure.
func (s *CatalogService) generate(ctx context.Context, prompt string) string {
	text, err := s.generator.Generate(ctx, prompt)
	if err == nil {
		return text
	}

	fallback := domainsvcs.FallbackDescription(err)
	s.fallbacks.Add(ctx, 1)
	s.log.WarnContext(ctx, "text generation failed, using fallback", "error", err, "fallback", fallback)
	return fallback
}

func (s *CatalogService) fromCache(ctx context.Context, id uuid.UUID) (*models.Item, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		if !pkgcache.IsMiss(err) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
		return nil, false
	}
	item, err := itemFromCache(cached)
	if err != nil {
		s.log.WarnContext(ctx, "item cache entry unreadable", "item_id", id, "error", err)
		return nil, false
	}
	return item, true
}

func (s *CatalogService) warmCache(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, CachedFromItem(item)); err != nil {
		s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID, "error", err)
	}
}

func (s *CatalogService) evictCache(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache delete failed", "item_id", id, "error", err)
	}
}

// CachedFromItem converts an Item to its cache representation.
func CachedFromItem(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		Name:        item.Name.String(),
		Price:       item.Price.String(),
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func itemFromCache(c *pkgcache.CachedItem) (*models.Item, error) {
	price, err := decimal.NewFromString(c.Price)
	if err != nil {
		return nil, fmt.Errorf("parse cached price: %w", err)
	}
	return &models.Item{
		ID:          c.ID,
		Name:        models.ItemName(c.Name),
		Price:       models.RestorePrice(price),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil && !isClientError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// isClientError reports whether err is an expected domain outcome rather than a fault.
func isClientError(err error) bool {
	for _, target := range []error{
		itemdomain.ErrItemNotFound,
		itemdomain.ErrItemAlreadyExists,
		itemdomain.ErrUnauthorized,
		itemdomain.ErrInvalidField,
		itemdomain.ErrInvalidValue,
		itemdomain.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// logNotifier is used when no broadcaster is configured.
type logNotifier struct {
	log logger.Logger
}

func (n logNotifier) Broadcast(ctx context.Context, message string) {
	n.log.InfoContext(ctx, "activity", "message", message)
}
