package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"user-auth-service/src/models"
	"user-auth-service/src/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var userColumns = []string{
	"id", "name", "email", "password", "role", "verified",
	"verification_token", "token_expires_at", "created_at", "updated_at",
}

func userRow(id uuid.UUID, email string, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns).
		AddRow(id.String(), "John", email, "$2a$10$hash", role, true, nil, nil, now, now)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %s", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestGetUserByID_Found(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(userRow(id, "john@example.com", "admin"))

	u, err := repository.GetUserByID(context.Background(), db, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != id || u.Role != models.RoleAdmin || u.VerificationToken != nil {
		t.Errorf("unexpected user %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repository.GetUserByID(context.Background(), db, id)
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserByEmail_DatabaseError(t *testing.T) {
	db, mock := newMock(t)
	dbErr := fmt.Errorf("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("john@example.com").
		WillReturnError(dbErr)

	_, err := repository.GetUserByEmail(context.Background(), db, "john@example.com")
	if !errors.Is(err, dbErr) {
		t.Errorf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		t.Error("db error must not read as not found")
	}
}

func TestGetUsers(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	expires := now.Add(time.Hour)

	rows := sqlmock.NewRows(userColumns).
		AddRow(uuid.NewString(), "A", "a@example.com", "h", "user", false, "verify-me", expires, now, now).
		AddRow(uuid.NewString(), "B", "b@example.com", "h", "admin", true, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC LIMIT $1 OFFSET $2`)).
		WithArgs(10, 10).
		WillReturnRows(rows)

	users, err := repository.GetUsers(context.Background(), db, 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].VerificationToken == nil || *users[0].VerificationToken != "verify-me" {
		t.Errorf("expected verification token on first user")
	}
	if users[0].TokenExpiresAt == nil {
		t.Errorf("expected token expiry on first user")
	}
	if users[1].Role != models.RoleAdmin {
		t.Errorf("expected admin, got %s", users[1].Role)
	}
}

func TestGetUserCount(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repository.GetUserCount(context.Background(), db)
	if err != nil || n != 7 {
		t.Errorf("expected 7, got %d (%v)", n, err)
	}
}

func TestSaveUser(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("John", "john@example.com", "$2a$10$hash").
		WillReturnRows(userRow(id, "john@example.com", "user"))

	u, err := repository.SaveUser(context.Background(), db, "John", "john@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != id || u.Role != models.RoleUser {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestSaveUser_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("John", "john@example.com", "$2a$10$hash").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repository.SaveUser(context.Background(), db, "John", "john@example.com", "$2a$10$hash")
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}
