package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkaleva/ornata/internal/cart"
	"github.com/mkaleva/ornata/internal/catalog"
	"github.com/mkaleva/ornata/internal/challenge"
	"github.com/mkaleva/ornata/internal/checkout"
	"github.com/mkaleva/ornata/internal/config"
	"github.com/mkaleva/ornata/internal/creds"
	"github.com/mkaleva/ornata/internal/gateway"
	"github.com/mkaleva/ornata/internal/localdb"
	"github.com/mkaleva/ornata/internal/logging"
	"github.com/mkaleva/ornata/internal/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	session  *session.Store
	cart     *cart.Store
	catalog  *catalog.Service
	checkout *checkout.Service
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	credRepo := creds.NewSQLiteRepository(db)
	gw := gateway.NewClient(c.APIBaseURL, credRepo, logger)
	ch := challenge.New(c.ChallengeURL, c.ChallengeSiteKey, logger)

	sess := session.NewStore(gw, credRepo, ch, logger)
	cartStore := cart.NewStore(gw, sess, logger)

	app := &App{
		config:   c,
		log:      logger,
		session:  sess,
		cart:     cartStore,
		catalog:  catalog.NewService(gw, sess, logger),
		checkout: checkout.NewService(gw, sess, cartStore, ch, logger),
		reader:   bufio.NewReader(os.Stdin),
	}

	// A stale or corrupt persisted session degrades to anonymous; only an
	// unreadable database is fatal here.
	if err := sess.Restore(ctx); err != nil {
		logger.Warn(ctx, "session restore failed", "error", err)
	}
	if app.isSignedIn() {
		if err := cartStore.Fetch(ctx); err != nil {
			logger.Warn(ctx, "initial cart fetch failed", "error", err)
		}
	}

	return app, nil
}

func (a *App) isSignedIn() bool {
	return a.session.User() != nil
}

func (a *App) isAdmin() bool {
	u := a.session.User()
	return u != nil && u.IsAdmin()
}

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Name
	if n := a.cart.Count(); n > 0 {
		s = fmt.Sprintf("%s, cart:%d", s, n)
	}
	return "(" + s + ")"
}

func (a *App) Run(ctx context.Context) {
	defer a.cart.Close()

	printlnFn("Welcome to the Ornata storefront (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
