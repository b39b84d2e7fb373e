package cli

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/dmitrijs2005/cosmospt/internal/client/config"
	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/dmitrijs2005/cosmospt/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cosmospt/internal/client/services"
	"github.com/dmitrijs2005/cosmospt/internal/client/state"
)

// env is what player commands work with: the local database, the API client
// and the auth service around them.
type env struct {
	cfg  *config.Config
	db   *sql.DB
	api  *client.HTTPClient
	auth *services.AuthService
}

func openEnv(ctx context.Context, cfg *config.Config) (*env, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open local database", err)
	}

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	return &env{
		cfg:  cfg,
		db:   db,
		api:  api,
		auth: services.NewAuthService(api, db, cfg.ServerURL),
	}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// session returns the stored session, arming the API client with its token.
func (e *env) session(ctx context.Context) (*models.Session, error) {
	s, err := e.auth.Session(ctx)
	if err != nil {
		return nil, apiError("load session", err)
	}
	return s, nil
}

func (e *env) state(userID string) *state.AppState {
	retries := e.cfg.FetchRetries
	if retries < 0 {
		retries = 0
	}
	policy := state.RetryPolicy{MaxRetries: uint64(retries), Backoff: e.cfg.FetchBackoff}
	return state.New(e.api, metadata.NewSQLiteRepository(e.db), userID, policy)
}

// withSession opens the environment, loads the session and runs fn.
func withSession(ctx context.Context, opts *RootOptions, fn func(e *env, s *models.Session) error) error {
	e, err := openEnv(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := e.session(ctx)
	if err != nil {
		return err
	}
	return fn(e, s)
}
