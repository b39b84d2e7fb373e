// Package server wires storage, services and transports together and runs
// the HTTP API and the gRPC health endpoint until a shutdown signal.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/config"
	"github.com/dmitrijs2005/cosmospt/internal/server/progression"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cosmospt/internal/server/rest"
	"github.com/dmitrijs2005/cosmospt/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/cosmospt/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *rest.HTTPServer
	grpcServer  *gs.GRPCServer
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var opts []progression.Option
	if progression.ParseMode(c.ConcurrencyMode) == progression.ModeOptimistic {
		opts = append(opts, progression.WithOptimisticWrites(c.MaxWriteRetries))
	}
	engine := progression.NewEngine(rm.Users(), logger, opts...)

	us := services.NewUserService(rm, c, logger)
	cs := services.NewCatalogService(rm, logger)
	as := services.NewActivityService(cs, us, engine, logger)

	h := rest.NewHandler(us, cs, as, engine, logger, c.RequireAuth)

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		httpServer:  rest.NewHTTPServer(c.EndpointAddrHTTP, rest.NewRouter(h, c.AllowedOrigin), logger),
		grpcServer:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a signal arrives, ctx is cancelled or a server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"storage", app.config.StorageDriver,
		"catalog", app.config.CatalogSource,
		"concurrency", app.config.ConcurrencyMode,
	)

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.httpServer.Run(gctx) })
	g.Go(func() error { return app.grpcServer.Run(gctx) })

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err)
	}

	if cerr := app.repomanager.Close(context.Background()); cerr != nil {
		app.logger.Error(ctx, "storage close error", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
