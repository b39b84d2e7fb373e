// Package services contains application services for the cosmosctl client.
// This file defines the authentication service: register, login, logout and
// the locally persisted session.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/dmitrijs2005/cosmospt/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/dbx"
)

const sessionKey = "session"

// AuthAPI is the part of client.Client the auth service needs.
type AuthAPI interface {
	Ping(ctx context.Context) error
	SetToken(token string)
	Register(ctx context.Context, name, password string) (*models.AuthResult, error)
	Login(ctx context.Context, name, password string) (*models.AuthResult, error)
}

// AuthService keeps the session of the current player.
//
// Contract:
//   - Register / Login: authenticate against the server and persist the
//     session (user id, name, token, server URL) in the local database.
//   - Session: load the persisted session and arm the API client with its
//     token. Returns client.ErrLocalDataNotAvailable when there is none, or
//     when it was issued by a different server.
//   - Logout: wipe the session and every cached snapshot.
type AuthService struct {
	api    AuthAPI
	db     *sql.DB
	server string
}

// NewAuthService constructs an AuthService bound to the API client, the local
// DB and the server URL sessions are scoped to.
func NewAuthService(api AuthAPI, db *sql.DB, server string) *AuthService {
	return &AuthService{api: api, db: db, server: server}
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}

// Register creates the account and logs in with it. password is wiped.
func (a *AuthService) Register(ctx context.Context, name string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)

	res, err := a.api.Register(ctx, name, string(password))
	if err != nil {
		return nil, err
	}
	return a.saveSession(ctx, res)
}

// Login authenticates name and persists the session. password is wiped.
func (a *AuthService) Login(ctx context.Context, name string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, name, string(password))
	if err != nil {
		return nil, err
	}
	return a.saveSession(ctx, res)
}

func (a *AuthService) saveSession(ctx context.Context, res *models.AuthResult) (*models.Session, error) {
	s := &models.Session{
		UserID: res.User.ID,
		Name:   res.User.Name,
		Token:  res.Token,
		Server: a.server,
	}

	// a new login invalidates snapshots cached for the previous player
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return metadata.SetJSON(ctx, repo, sessionKey, s)
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.api.SetToken(s.Token)
	return s, nil
}

func (a *AuthService) Session(ctx context.Context) (*models.Session, error) {
	var s models.Session
	ok, err := metadata.GetJSON(ctx, metadata.NewSQLiteRepository(a.db), sessionKey, &s)
	if err != nil {
		return nil, err
	}
	if !ok || s.Token == "" || s.Server != a.server {
		return nil, client.ErrLocalDataNotAvailable
	}

	a.api.SetToken(s.Token)
	return &s, nil
}

func (a *AuthService) Logout(ctx context.Context) error {
	a.api.SetToken("")
	return metadata.NewSQLiteRepository(a.db).Clear(ctx)
}
