package services

import (
	"github.com/ghuser/storecatalog/pkg/app"
	"github.com/ghuser/storecatalog/pkg/cache"
	"github.com/ghuser/storecatalog/services/catalog/infrastructure/persistence/postgres"
	"github.com/ghuser/storecatalog/services/catalog/infrastructure/textgen"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
}

// New wires the catalog service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	generator := textgen.NewClient(textgen.OptionsFromConfig(a.Config), a.Logger)

	var opts []Option
	if a.Redis != nil {
		opts = append(opts, WithCache(cache.NewItemCache(a.Redis)))
	}
	if a.Broadcaster != nil {
		opts = append(opts, WithNotifier(a.Broadcaster))
	}
	return &Services{
		Catalog: NewCatalogService(repo, generator, a.Logger, opts...),
	}
}
