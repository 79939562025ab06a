package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/storecatalog/pkg/cache"
	"github.com/ghuser/storecatalog/pkg/events"
	"github.com/ghuser/storecatalog/pkg/logger"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
	itemdomain "github.com/ghuser/storecatalog/services/catalog/domain"
	itemEvents "github.com/ghuser/storecatalog/services/catalog/domain/events"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
)

type itemReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type itemCache interface {
	Set(ctx context.Context, item *cache.CachedItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// readModel keeps the Redis item cache in line with committed catalog events.
// Created and updated items are re-read from Postgres so the cache never holds
// an older row than the one that produced the event.
type readModel struct {
	repo  itemReader
	cache itemCache
	log   logger.Logger
}

func (m *readModel) refresh(ctx context.Context, id uuid.UUID) error {
	item, err := m.repo.GetByID(ctx, id)
	if errors.Is(err, itemdomain.ErrItemNotFound) {
		return m.evict(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("load item %s: %w", id, err)
	}

	if err := m.cache.Set(ctx, appsvcs.CachedFromItem(item)); err != nil {
		// Cache warming is best-effort; log but do not fail the handler.
		m.log.WarnContext(ctx, "cache warm failed", "item_id", id, "error", err)
		return nil
	}
	m.log.InfoContext(ctx, "cache warmed", "item_id", id)
	return nil
}

func (m *readModel) evict(ctx context.Context, id uuid.UUID) error {
	// A failed eviction leaves a stale entry behind, so it is retried.
	if err := m.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("evict item %s: %w", id, err)
	}
	m.log.InfoContext(ctx, "cache evicted", "item_id", id)
	return nil
}

// handlers maps each topic to its handler. Handlers must be idempotent since
// EventBus retries up to 3x on failure.
func (m *readModel) handlers() map[string]events.Handler {
	return map[string]events.Handler{
		itemEvents.TopicItemCreated: events.JSONHandler(func(ctx context.Context, evt itemEvents.ItemCreatedEvent) error {
			return m.refresh(ctx, evt.ItemID)
		}),
		itemEvents.TopicItemUpdated: events.JSONHandler(func(ctx context.Context, evt itemEvents.ItemUpdatedEvent) error {
			return m.refresh(ctx, evt.ItemID)
		}),
		itemEvents.TopicItemDeleted: events.JSONHandler(func(ctx context.Context, evt itemEvents.ItemDeletedEvent) error {
			return m.evict(ctx, evt.ItemID)
		}),
	}
}
