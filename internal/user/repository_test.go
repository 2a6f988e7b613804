package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}

func setupUserMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestCreate(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (id, full_name, email, password_hash, role)")).
		WithArgs(sqlmock.AnyArg(), "Budi Santoso", "budi@example.com", "hash", "user").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "Budi Santoso", "budi@example.com", "hash", "user", now, now))

	user, err := repo.Create(context.Background(), "Budi Santoso", "budi@example.com", "hash", "user")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "user", user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), "Budi", "budi@example.com", "hash", "user")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestFindByEmail(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("budi@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), "Budi", "budi@example.com", "hash", "admin", now, now))

	user, err := repo.FindByEmail(context.Background(), "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("budi@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "budi@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestList_RoleFilterAndPaging(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("admin", 10, 20).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), "Admin", "admin@seacatering.com", "hash", "admin", now, now))

	users, err := repo.List(context.Background(), ListQuery{Role: "admin", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY created_at DESC LIMIT $1")).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows(columns))

	users, err := repo.List(context.Background(), ListQuery{Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUpdateRole(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1")).
		WithArgs(id, "admin").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "Budi", "budi@example.com", "hash", "admin", now, now))

	user, err := repo.UpdateRole(context.Background(), id, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
}

func TestUpdateRole_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WithArgs(id, "admin").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.UpdateRole(context.Background(), id, "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
