package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/dmitrijs2005/cosmospt/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cosmosctl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---- fake client ----

type fakeAPI struct {
	RegisterErr error
	LoginErr    error
	PingErr     error

	LastPassword string
	Token        string
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeAPI) SetToken(token string) { f.Token = token }

func (f *fakeAPI) Register(ctx context.Context, name, password string) (*models.AuthResult, error) {
	f.LastPassword = password
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.AuthResult{User: models.User{ID: "u-" + name, Name: name}, Token: "tok-" + name}, nil
}

func (f *fakeAPI) Login(ctx context.Context, name, password string) (*models.AuthResult, error) {
	f.LastPassword = password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return &models.AuthResult{User: models.User{ID: "u-" + name, Name: name}, Token: "tok-" + name}, nil
}

const server = "http://cosmos.test"

// ---- TESTS ----

func TestAuthService_RegisterPersistsSession(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	api := &fakeAPI{}
	svc := NewAuthService(api, db, server)

	password := []byte("secret")
	s, err := svc.Register(ctx, "nova", password)
	require.NoError(t, err)

	assert.Equal(t, &models.Session{UserID: "u-nova", Name: "nova", Token: "tok-nova", Server: server}, s)
	assert.Equal(t, "secret", api.LastPassword)
	assert.Equal(t, make([]byte, 6), password, "password must be wiped")
	assert.Equal(t, "tok-nova", api.Token)

	loaded, err := NewAuthService(&fakeAPI{}, db, server).Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestAuthService_LoginReplacesCachedData(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "catalog:quizzes", []byte(`[]`)))

	svc := NewAuthService(&fakeAPI{}, db, server)
	_, err := svc.Login(ctx, "orbit", []byte("pw"))
	require.NoError(t, err)

	v, err := repo.Get(ctx, "catalog:quizzes")
	require.NoError(t, err)
	assert.Nil(t, v, "snapshots of the previous player must be dropped")
}

func TestAuthService_LoginErrorLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	api := &fakeAPI{}
	svc := NewAuthService(api, db, server)

	_, err := svc.Login(ctx, "first", []byte("pw"))
	require.NoError(t, err)

	api.LoginErr = fmt.Errorf("%w: invalid credentials", client.ErrRejected)
	_, err = svc.Login(ctx, "second", []byte("bad"))
	require.ErrorIs(t, err, client.ErrRejected)

	s, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", s.Name)
}

func TestAuthService_SessionMissingOrForeign(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	_, err := NewAuthService(&fakeAPI{}, db, server).Session(ctx)
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)

	_, err = NewAuthService(&fakeAPI{}, db, server).Login(ctx, "nova", []byte("pw"))
	require.NoError(t, err)

	_, err = NewAuthService(&fakeAPI{}, db, "http://elsewhere").Session(ctx)
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	api := &fakeAPI{}
	svc := NewAuthService(api, db, server)

	_, err := svc.Login(ctx, "nova", []byte("pw"))
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assert.Empty(t, api.Token)
	_, err = svc.Session(ctx)
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_Ping(t *testing.T) {
	want := errors.New("down")
	svc := NewAuthService(&fakeAPI{PingErr: want}, nil, server)
	require.ErrorIs(t, svc.Ping(context.Background()), want)
}
