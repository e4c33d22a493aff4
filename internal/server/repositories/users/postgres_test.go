package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("shrek", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	u, err := repo.Create(context.Background(), &models.User{Username: "shrek", Password: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected id=1, got %d", u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPostgresCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("shrek", "hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), &models.User{Username: "shrek", Password: "hash"})
	if !errors.Is(err, common.ErrorDuplicate) {
		t.Fatalf("expected common.ErrorDuplicate, got %v", err)
	}
}

func TestPostgresCreate_OtherDBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &models.User{Username: "u", Password: "p"})
	if err == nil || errors.Is(err, common.ErrorDuplicate) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresGetByUsername_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password"}).
		AddRow(int64(1), "Guy", "hash")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password FROM users`)).
		WithArgs("Guy").
		WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "Guy")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if u.ID != 1 || u.Username != "Guy" || u.Password != "hash" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestPostgresGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password FROM users`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
