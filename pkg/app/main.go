package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/storecatalog/pkg/auth"
	"github.com/ghuser/storecatalog/pkg/broadcast"
	"github.com/ghuser/storecatalog/pkg/cache"
	"github.com/ghuser/storecatalog/pkg/config"
	"github.com/ghuser/storecatalog/pkg/database"
	"github.com/ghuser/storecatalog/pkg/events"
	"github.com/ghuser/storecatalog/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store       // Redis-backed session store; nil in worker process
	Users        *auth.Directory      // configured accounts; nil in worker process
	Broadcaster  *broadcast.Publisher // activity messages for /ws/logs; nil in worker process
}
