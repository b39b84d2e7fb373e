package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/dbx"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository keeps each user as a JSONB document next to the
// columns the store itself needs (name uniqueness, hash, version).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Version = 1

	doc, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	query :=
		`INSERT INTO users (id, name, password_hash, version, doc)
         VALUES ($1, $2, $3, $4, $5)
		 `

	_, err = r.db.ExecContext(ctx, query, user.ID, user.Name, user.PasswordHash, user.Version, doc)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT password_hash, version, doc FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	query :=
		`SELECT password_hash, version, doc FROM users
		 WHERE name = $1
		 `
	return r.getOne(ctx, query, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var (
		hash    string
		version int64
		doc     []byte
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&hash, &version, &doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user := &models.User{}
	if err := json.Unmarshal(doc, user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user.PasswordHash = hash
	user.Version = version

	return user, nil
}

func (r *PostgresRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET doc = $2, version = version + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING version
		 `
	err := r.update(ctx, user, query, user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SaveIfVersion reports a missing row as a version conflict as well; the
// caller re-reads and gets common.ErrorNotFound on its next attempt.
func (r *PostgresRepository) SaveIfVersion(ctx context.Context, user *models.User, expected int64) (*models.User, error) {
	query :=
		`UPDATE users SET doc = $2, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $3
		 RETURNING version
		 `
	err := r.update(ctx, user, query, user.ID, expected)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrVersionConflict
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) update(ctx context.Context, user *models.User, query string, id string, extra ...any) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	args := append([]any{id, doc}, extra...)

	var version int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.Version = version
	return nil
}
