package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/config"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewUserService(rm, cfg, logging.Nop())
}

// failingUsers fails every lookup with err.
type failingUsers struct {
	users.Repository
	err error
}

func (f *failingUsers) GetByName(context.Context, string) (*models.User, error) { return nil, f.err }

type stubManager struct {
	users users.Repository
}

func (m *stubManager) Users() users.Repository             { return m.users }
func (m *stubManager) Catalog() catalog.Repository         { return catalog.NewMemoryRepository() }
func (m *stubManager) RunMigrations(context.Context) error { return nil }
func (m *stubManager) Close(context.Context) error         { return nil }

func TestRegister_Success(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())

	res, err := s.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "alice", res.User.Name)
	assert.Equal(t, 0, res.User.Points)
	assert.Equal(t, 1, res.User.Level)
	assert.Len(t, res.User.Achievements, 5)
	assert.NotEqual(t, "pw", res.User.PasswordHash)

	id, err := s.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)
}

func TestRegister_DuplicateName(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestRegister_Validation(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())

	_, err := s.Register(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(context.Background(), "bob", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_LookupError(t *testing.T) {
	boom := errors.New("boom")
	s := newUserService(t, &stubManager{users: &failingUsers{err: boom}})

	_, err := s.Register(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, boom)
}

func TestLogin(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())
	ctx := context.Background()

	reg, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		res, err := s.Login(ctx, "alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, res.User.ID)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := s.Login(ctx, "carol", "pw")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestValidateToken_Invalid(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestCreateUser_WithPoints(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())
	points := 450

	u, err := s.CreateUser(context.Background(), CreateUserInput{Name: "dave", Password: "pw", Points: &points})
	require.NoError(t, err)
	assert.Equal(t, 450, u.Points)
	assert.Equal(t, 3, u.Level)
	assert.Len(t, u.Achievements, 5)

	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 450, got.Points)
}

func TestCreateUser_MissingFields(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())

	_, err := s.CreateUser(context.Background(), CreateUserInput{Name: "dave"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newUserService(t, repomanager.NewMemoryRepositoryManager())

	_, err := s.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
