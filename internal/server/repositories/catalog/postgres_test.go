package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listQ   = `(?s)^SELECT\s+doc\s+FROM\s+catalog_documents\s+WHERE\s+collection\s*=\s*\$1\s+ORDER\s+BY\s+position\s*$`
	deleteQ = `(?s)^DELETE\s+FROM\s+catalog_documents\s+WHERE\s+collection\s*=\s*\$1$`
	insertQ = `(?s)^INSERT\s+INTO\s+catalog_documents\s*\(collection,\s*position,\s*doc_id,\s*doc\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"id":"mercury"}`)).
		AddRow([]byte(`{"id":"venus"}`))
	mock.ExpectQuery(listQ).WithArgs("destinations").WillReturnRows(rows)

	docs, err := repo.List(context.Background(), models.CollectionDestinations)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"id":"venus"}`, string(docs[1]))
}

func TestPostgresList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WithArgs("labs").WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	docs, err := repo.List(context.Background(), models.CollectionLabs)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestPostgresList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WillReturnError(errors.New("db err"))

	_, err := repo.List(context.Background(), models.CollectionQuizzes)
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db err`), err.Error())
}

func TestPostgresReplace(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQ).WithArgs("vehicles").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(insertQ).WithArgs("vehicles", 0, "rocket", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQ).WithArgs("vehicles", 1, "shuttle", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Replace(context.Background(), models.CollectionVehicles, []json.RawMessage{
		json.RawMessage(`{"id":"rocket"}`),
		json.RawMessage(`{"id":"shuttle"}`),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplace_InsertError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQ).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertQ).WillReturnError(errors.New("boom"))

	err := repo.Replace(context.Background(), models.CollectionVehicles, []json.RawMessage{json.RawMessage(`{"id":"x"}`)})
	require.Error(t, err)
}
