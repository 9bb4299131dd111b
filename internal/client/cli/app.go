package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dverenev/priceadmin/internal/client/api"
	"github.com/dverenev/priceadmin/internal/client/cache"
	"github.com/dverenev/priceadmin/internal/client/config"
	"github.com/dverenev/priceadmin/internal/client/notify"
	"github.com/dverenev/priceadmin/internal/client/repositories/settings"
	"github.com/dverenev/priceadmin/internal/client/session"
	"github.com/dverenev/priceadmin/internal/client/storage"
	"github.com/dverenev/priceadmin/internal/client/theme"
	"github.com/dverenev/priceadmin/internal/client/transport"
	"github.com/dverenev/priceadmin/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the configuration, local settings storage, API layer, session,
// and cache behind the interactive REPL.
type App struct {
	config  *config.Config
	session *session.Manager
	store   *cache.Store
	notes   *notify.Center
	themes  *theme.Manager
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := settings.NewSQLiteRepository(db)
	tokens := settings.NewTokenStore(repo)
	notes := notify.NewCenter()

	tc := transport.New(transport.Options{
		BaseURL: c.APIBaseURL,
		Timeout: c.RequestTimeout,
		Tokens:  tokens,
		Logger:  log,
	})

	sess := session.New(api.NewAuthAPI(tc), tokens, notes, log)
	store := cache.NewStore(api.NewPriceListAPI(tc), notes, log)

	return &App{
		config:  c,
		session: sess,
		store:   store,
		notes:   notes,
		themes:  theme.NewManager(repo),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

// Run restores any persisted session, starts the background profile refresh
// and toast printer, and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.session.Init(ctx)

	go a.session.StartProfileRefresh(ctx, a.config.ProfileRefreshInterval)
	go a.printToasts(ctx)

	a.Root(ctx)
}

// printToasts relays notifications to the terminal as they are published.
func (a *App) printToasts(ctx context.Context) {
	toasts, cancel := a.notes.Subscribe()
	defer cancel()

	for {
		select {
		case t, ok := <-toasts:
			if !ok {
				return
			}
			printlnFn(formatToast(t))
		case <-ctx.Done():
			return
		}
	}
}
