package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertQ     = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*password_hash,\s*version,\s*doc\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	selectByID  = `(?s)^SELECT\s+password_hash,\s*version,\s*doc\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	selectByNm  = `(?s)^SELECT\s+password_hash,\s*version,\s*doc\s+FROM\s+users\s+WHERE\s+name\s*=\s*\$1\s*$`
	updateQ     = `(?s)^UPDATE\s+users\s+SET\s+doc\s*=\s*\$2,\s*version\s*=\s*version\s*\+\s*1,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+version\s*$`
	updateIfVer = `(?s)^UPDATE\s+users\s+SET\s+doc\s*=\s*\$2,\s*version\s*=\s*version\s*\+\s*1,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+version\s*=\s*\$3\s+RETURNING\s+version\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userDoc(t *testing.T, u *models.User) []byte {
	t.Helper()
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("u-1", "alice", "hash", int64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := models.NewUser("u-1", "alice", "hash")
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || got.Version != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs(sqlmock.AnyArg(), "bob", "hash", int64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), models.NewUser("", "bob", "hash"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), models.NewUser("u-1", "alice", "hash"))
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), models.NewUser("u-1", "alice", "hash"))
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	stored := models.NewUser("u-1", "alice", "")
	stored.SetPoints(450)
	stored.CompletedQuizzes = []string{"q1"}

	rows := sqlmock.NewRows([]string{"password_hash", "version", "doc"}).
		AddRow("hash", int64(4), userDoc(t, stored))
	mock.ExpectQuery(selectByID).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.PasswordHash != "hash" || got.Version != 4 || got.Points != 450 || got.Level != 3 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if len(got.Achievements) != 5 || got.CompletedQuizzes[0] != "q1" {
		t.Fatalf("document not decoded: %+v", got)
	}
}

func TestGetByName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByNm).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByID).WithArgs("u-1").WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSave_BumpsVersion(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateQ).
		WithArgs("u-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(8)))

	got, err := repo.Save(context.Background(), models.NewUser("u-1", "alice", ""))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got.Version != 8 {
		t.Fatalf("unexpected version: %d", got.Version)
	}
}

func TestSave_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateQ).WillReturnError(sql.ErrNoRows)

	_, err := repo.Save(context.Background(), models.NewUser("u-1", "alice", ""))
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSaveIfVersion_Conflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateIfVer).
		WithArgs("u-1", sqlmock.AnyArg(), int64(3)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SaveIfVersion(context.Background(), models.NewUser("u-1", "alice", ""), 3)
	if !errors.Is(err, common.ErrVersionConflict) {
		t.Fatalf("want common.ErrVersionConflict, got %v", err)
	}
}

func TestSaveIfVersion_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateIfVer).
		WithArgs("u-1", sqlmock.AnyArg(), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(4)))

	got, err := repo.SaveIfVersion(context.Background(), models.NewUser("u-1", "alice", ""), 3)
	if err != nil {
		t.Fatalf("SaveIfVersion error: %v", err)
	}
	if got.Version != 4 {
		t.Fatalf("unexpected version: %d", got.Version)
	}
}
